// Package filter compiles sample filter expressions.
//
// The expression language is provided by vulcand/predicate:
//   - Gt(n), Ge(n), Lt(n), Le(n), Eq(n): numeric comparison
//   - Even(), Odd(): parity of integer samples
//   - LenGe(n), LenLe(n): length in code points of the sample text
//   - Contains("s"), HasPrefix("s"): substring match on the sample text
//   - Logical operators: && (and), || (or), ! (not)
//
// Numeric functions never match samples that are not numbers.
package filter

import (
	"cmp"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vulcand/predicate"
)

// Subject is the view of a sampled value that expressions query.
type Subject struct {
	// Text is the printed form of the value.
	Text string
	// Number holds the numeric payload when Numeric is set.
	Number  float64
	Numeric bool
	// Int holds the exact value of integer samples when Integral is set.
	// Number alone loses precision beyond 2^53.
	Int      int64
	Integral bool
}

// Text returns a non-numeric subject.
func Text(s string) Subject {
	return Subject{Text: s}
}

// Number returns a numeric subject printed as text.
func Number(v float64, text string) Subject {
	return Subject{Text: text, Number: v, Numeric: true}
}

// Integer returns a numeric subject with an exact integer payload.
func Integer(v int64, text string) Subject {
	return Subject{Text: text, Number: float64(v), Numeric: true, Int: v, Integral: true}
}

// Matcher reports whether a subject satisfies a compiled expression.
type Matcher func(Subject) bool

// Compile parses expr into a Matcher.
func Compile(expr string) (Matcher, error) {
	parser, err := predicate.NewParser(predicate.Def{
		Functions: functions(),
		Operators: predicate.Operators{
			AND: func(a, b Matcher) Matcher {
				return func(s Subject) bool { return a(s) && b(s) }
			},
			OR: func(a, b Matcher) Matcher {
				return func(s Subject) bool { return a(s) || b(s) }
			},
			NOT: func(a Matcher) Matcher {
				return func(s Subject) bool { return !a(s) }
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	pred, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
	}

	m, ok := pred.(Matcher)
	if !ok {
		return nil, fmt.Errorf("filter expression %q must evaluate to a condition, got %T", expr, pred)
	}
	return m, nil
}

func functions() map[string]any {
	return map[string]any{
		"Gt":        numeric(func(c int) bool { return c > 0 }),
		"Ge":        numeric(func(c int) bool { return c >= 0 }),
		"Lt":        numeric(func(c int) bool { return c < 0 }),
		"Le":        numeric(func(c int) bool { return c <= 0 }),
		"Eq":        numeric(func(c int) bool { return c == 0 }),
		"Even":      parity(0),
		"Odd":       parity(1),
		"LenGe":     length(func(l, n int) bool { return l >= n }),
		"LenLe":     length(func(l, n int) bool { return l <= n }),
		"Contains":  text(strings.Contains),
		"HasPrefix": text(strings.HasPrefix),
	}
}

// numeric builds a comparison against n. ok receives the sign of the
// subject minus n.
func numeric(ok func(c int) bool) func(int) Matcher {
	return func(n int) Matcher {
		return func(s Subject) bool {
			switch {
			case s.Integral:
				return ok(cmp.Compare(s.Int, int64(n)))
			case s.Numeric && !math.IsNaN(s.Number):
				return ok(cmp.Compare(s.Number, float64(n)))
			default:
				return false
			}
		}
	}
}

func parity(rem int64) func() Matcher {
	return func() Matcher {
		return func(s Subject) bool {
			switch {
			case s.Integral:
				return s.Int%2 == rem || s.Int%2 == -rem
			case s.Numeric && s.Number == math.Trunc(s.Number) && !math.IsInf(s.Number, 0):
				return math.Abs(math.Mod(s.Number, 2)) == float64(rem)
			default:
				return false
			}
		}
	}
}

func length(cmp func(l, n int) bool) func(int) Matcher {
	return func(n int) Matcher {
		return func(s Subject) bool {
			return cmp(utf8.RuneCountInString(s.Text), n)
		}
	}
}

func text(match func(s, sub string) bool) func(string) Matcher {
	return func(sub string) Matcher {
		return func(s Subject) bool {
			return match(s.Text, sub)
		}
	}
}
