// Package cli provides user-facing output helpers for the modgen CLI.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nomagicln/modgen/internal/catalog"
	"github.com/nomagicln/modgen/pkg/config"
)

// ErrorFormatter provides user-friendly error messages.
type ErrorFormatter struct{}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{}
}

// FormatError formats an error into a user-friendly message.
func (f *ErrorFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var unknown *catalog.UnknownClassError
	if errors.As(err, &unknown) {
		return f.formatUnknownClassError(unknown)
	}

	var invalid *config.ValidationError
	if errors.As(err, &invalid) {
		return f.formatValidationError(invalid, err)
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "invalid filter expression") {
		return f.formatFilterError(errMsg)
	}
	if strings.Contains(errMsg, "unknown shrink order") {
		return f.formatOrderError(errMsg)
	}
	return fmt.Sprintf("Error: %s", errMsg)
}

// formatUnknownClassError formats unknown class errors with suggestions.
func (f *ErrorFormatter) formatUnknownClassError(err *catalog.UnknownClassError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: Unknown class '%s'.\n\n", err.Name))

	if suggestions := f.SuggestSimilar(err.Name, err.Known); len(suggestions) > 0 {
		sb.WriteString("Did you mean:\n")
		for _, suggestion := range suggestions {
			sb.WriteString(fmt.Sprintf("  %s\n", suggestion))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("To see all classes, use:\n")
	sb.WriteString("  modgen classes")
	return sb.String()
}

// formatValidationError formats configuration validation errors.
func (f *ErrorFormatter) formatValidationError(invalid *config.ValidationError, err error) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", err))
	sb.WriteString(fmt.Sprintf("Check the '%s' setting in your config file or the matching flag.\n", invalid.Field))
	sb.WriteString("To see the effective settings, use:\n")
	sb.WriteString("  modgen --help")
	return sb.String()
}

// formatFilterError formats --where parse errors.
func (f *ErrorFormatter) formatFilterError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", errMsg))
	sb.WriteString("Available conditions:\n")
	sb.WriteString("  Gt(n) Ge(n) Lt(n) Le(n) Eq(n) Even() Odd()\n")
	sb.WriteString("  LenGe(n) LenLe(n) Contains(\"s\") HasPrefix(\"s\")\n")
	sb.WriteString("Combine them with &&, || and !.\n\n")
	sb.WriteString("Example:\n")
	sb.WriteString("  modgen sample narrow-int --where 'Gt(3) && Even()'")
	return sb.String()
}

// formatOrderError formats unknown --order values.
func (f *ErrorFormatter) formatOrderError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", errMsg))
	sb.WriteString("Shrink orders:\n")
	sb.WriteString("  default  candidates of the class shrinker\n")
	sb.WriteString("  double   one-step candidates, then two-step candidates\n")
	sb.WriteString("  ranked   reordered around --rank")
	return sb.String()
}

// SuggestSimilar suggests known names close to name.
func (f *ErrorFormatter) SuggestSimilar(name string, known []string) []string {
	if len(known) == 0 {
		return nil
	}

	var suggestions []string
	nameLower := strings.ToLower(name)

	for _, candidate := range known {
		candidateLower := strings.ToLower(candidate)

		// Exact match (case-insensitive)
		if nameLower == candidateLower {
			return []string{candidate}
		}

		// Prefix match
		if strings.HasPrefix(candidateLower, nameLower) {
			suggestions = append(suggestions, candidate)
			continue
		}

		// Contains match
		if nameLower != "" && strings.Contains(candidateLower, nameLower) {
			suggestions = append(suggestions, candidate)
			continue
		}

		if f.levenshteinDistance(nameLower, candidateLower) <= 2 {
			suggestions = append(suggestions, candidate)
		}
	}

	return suggestions
}

// levenshteinDistance calculates the edit distance between two strings.
func (f *ErrorFormatter) levenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
