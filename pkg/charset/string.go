package charset

import (
	"slices"
	"strconv"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// String is a sequence of characters of class C. The payload is kept as code
// points so that surrogates drawn by AllUnicode survive.
type String[C Class] struct {
	value []rune
}

// Runes returns the code points.
func (s String[C]) Runes() []rune { return s.value }

// Get returns the payload as a Go string. Surrogates become U+FFFD.
func (s String[C]) Get() string { return string(s.value) }

// Len returns the number of code points.
func (s String[C]) Len() int { return len(s.value) }

// Equal reports whether both hold the same code points.
func (s String[C]) Equal(other String[C]) bool { return slices.Equal(s.value, other.value) }

func (s String[C]) String() string { return strconv.Quote(string(s.value)) }

// StringOf generates strings of class C holding at most size characters.
// Shrinking drops characters and shrinks single characters with the class's
// own shrinker.
func StringOf[C Class]() arbitrary.Arbitrary[String[C]] {
	var class C
	runes := arbitrary.SliceOf(class.runes())
	wrap := func(v []rune) String[C] { return String[C]{v} }
	return arbitrary.New(arbitrary.Map(runes.Gen, wrap), func(s String[C]) shrink.Seq[String[C]] {
		return shrink.Map(runes.Shrinks(s.value), wrap)
	})
}

// MakeString wraps the code points of v if class C can produce all of them.
func MakeString[C Class](v []rune) (String[C], bool) {
	var class C
	for _, r := range v {
		if !class.Contains(r) {
			return String[C]{}, false
		}
	}
	return String[C]{slices.Clone(v)}, true
}
