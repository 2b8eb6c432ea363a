// Package completion provides shell completion support for modgen.
package completion

import (
	"sort"
	"strings"

	"github.com/nomagicln/modgen/internal/catalog"
)

var orderNames = []string{
	string(catalog.OrderDefault),
	string(catalog.OrderDouble),
	string(catalog.OrderRanked),
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Provider provides completion suggestions for commands and arguments.
type Provider struct {
	classes *catalog.Catalog
}

// NewProvider creates a new completion provider.
func NewProvider(classes *catalog.Catalog) *Provider {
	return &Provider{classes: classes}
}

// CompleteClassNames returns the registered class names starting with prefix.
func (p *Provider) CompleteClassNames(prefix string) []string {
	return filterPrefix(p.classes.Names(), prefix)
}

// CompleteClassFamilies returns the class names whose dash separated parts
// start with prefix, so "int" completes both narrow-int and wide-int8.
func (p *Provider) CompleteClassFamilies(prefix string) []string {
	if prefix == "" {
		return p.classes.Names()
	}
	seen := make(map[string]bool)
	for _, name := range p.classes.Names() {
		for _, part := range strings.Split(name, "-") {
			if matchesPrefix(part, prefix) {
				seen[name] = true
				break
			}
		}
		if matchesPrefix(name, prefix) {
			seen[name] = true
		}
	}
	return sortedKeys(seen)
}

// CompleteFlagValues returns possible values for a flag.
func (p *Provider) CompleteFlagValues(flagName, prefix string) []string {
	switch cleanFlagName(flagName) {
	case "order", "o":
		return filterPrefix(orderNames, prefix)
	case "log-level":
		return filterPrefix(logLevels, prefix)
	default:
		return nil
	}
}

// cleanFlagName removes -- or - prefix from flag names.
func cleanFlagName(flagName string) string {
	return strings.TrimLeft(flagName, "-")
}

func filterPrefix(values []string, prefix string) []string {
	if prefix == "" {
		return values
	}
	var matches []string
	for _, v := range values {
		if matchesPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}

// matchesPrefix checks if a string matches the given prefix.
func matchesPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

// sortedKeys converts a map's keys to a sorted slice.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
