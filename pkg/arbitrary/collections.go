package arbitrary

import (
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/nomagicln/modgen/pkg/shrink"
)

// SliceOf generates slices of at most size elements drawn from elem.
// Shrinking drops chunks of elements and shrinks single elements with elem's
// shrinker, both delegated to gopter's slice shrinker.
func SliceOf[T any](elem Arbitrary[T]) Arbitrary[[]T] {
	sliceGen := gen.SliceOf(elem.Gopter())
	sliceShrinker := gen.SliceShrinker(elem.GopterShrinker())
	g := func(params *gopter.GenParameters) []T {
		sizeParams := *params
		sizeParams.MinSize = 0
		sizeParams.MaxSize = Size(params)
		return draw[[]T](sliceGen)(&sizeParams)
	}
	s := func(v []T) shrink.Seq[[]T] {
		return shrink.FromGopter[[]T](sliceShrinker(v))
	}
	return New(g, s)
}

// Char is the base character arbitrary: uniform over [0, 255] with CharShrink.
func Char() Arbitrary[rune] {
	return New(RuneRange(0, 0xFF), CharShrink)
}

// RuneRange draws uniformly from [lo, hi].
func RuneRange(lo, hi rune) Gen[rune] {
	return draw[rune](gen.RuneRange(lo, hi))
}

var charCandidates = []rune{'a', 'b', 'c', 'A', 'B', 'C', '1', '2', '3', ' ', '\n'}

// CharShrink offers a, b, c, the lowercase form of an uppercase r, A, B, C,
// 1, 2, 3, space and newline, keeping only those simpler than r. Lowercase
// letters are simplest, then uppercase, digits, space, other whitespace, and
// finally everything else by code point.
func CharShrink(r rune) shrink.Seq[rune] {
	candidates := make([]rune, 0, len(charCandidates)+1)
	candidates = append(candidates, charCandidates[:3]...)
	if unicode.IsUpper(r) {
		candidates = append(candidates, unicode.ToLower(r))
	}
	candidates = append(candidates, charCandidates[3:]...)
	seen := make(map[rune]bool, len(candidates))
	return shrink.Of(candidates...).Filter(func(c rune) bool {
		if seen[c] {
			return false
		}
		seen[c] = true
		return simplerChar(c, r)
	})
}

// simplerChar orders characters lexicographically by
// (not lower, not upper, not digit, not space, not whitespace, code point).
func simplerChar(a, b rune) bool {
	ka, kb := charKey(a), charKey(b)
	for i := range ka {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return false
}

func charKey(r rune) [6]int {
	flag := func(cond bool) int {
		if cond {
			return 0
		}
		return 1
	}
	return [6]int{
		flag(unicode.IsLower(r)),
		flag(unicode.IsUpper(r)),
		flag(unicode.IsDigit(r)),
		flag(r == ' '),
		flag(unicode.IsSpace(r)),
		int(r),
	}
}
