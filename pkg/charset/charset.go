// Package charset provides character and string classes.
//
// A class is an empty marker type selecting how code points are drawn. Char[C]
// and String[C] are distinct types per class, so a String[Printable] can never
// be passed where a String[ASCII] is expected.
//
// Only Latin1 shrinks characters; the other classes leave single characters
// alone, and their strings shrink by dropping characters.
package charset

import (
	"unicode"

	"github.com/leanovate/gopter/gen"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// Code point boundaries.
const (
	MaxASCII      = 0x7F
	MaxCodePoint  = unicode.MaxRune
	SurrogateMin  = 0xD800
	SurrogateMax  = 0xDFFF
	surrogateSpan = SurrogateMax - SurrogateMin + 1
)

// Weights of the ASCII and wider alternatives in Unicode and AllUnicode.
const (
	asciiWeight = 3
	wideWeight  = 1
)

// Class selects the generator and shrinker of a character class.
type Class interface {
	// Name identifies the class in listings.
	Name() string
	// Contains reports whether the class can produce r.
	Contains(r rune) bool
	runes() arbitrary.Arbitrary[rune]
}

// ASCII draws uniformly from [0, 127] and does not shrink.
type ASCII struct{}

// Latin1 is the base character arbitrary, [0, 255] with arbitrary.CharShrink.
type Latin1 struct{}

// Unicode draws ASCII three times out of four, otherwise any code point
// outside the surrogate range.
type Unicode struct{}

// Printable draws like Unicode and keeps only printable code points.
type Printable struct{}

// AllUnicode draws ASCII three times out of four, otherwise any code point
// including surrogates.
type AllUnicode struct{}

func (ASCII) Name() string      { return "ascii" }
func (Latin1) Name() string     { return "latin1" }
func (Unicode) Name() string    { return "unicode" }
func (Printable) Name() string  { return "printable" }
func (AllUnicode) Name() string { return "all-unicode" }

func (ASCII) Contains(r rune) bool      { return r >= 0 && r <= MaxASCII }
func (Latin1) Contains(r rune) bool     { return r >= 0 && r <= 0xFF }
func (Unicode) Contains(r rune) bool    { return r >= 0 && r <= MaxCodePoint && !IsSurrogate(r) }
func (Printable) Contains(r rune) bool  { return IsPrintable(r) && !IsSurrogate(r) }
func (AllUnicode) Contains(r rune) bool { return r >= 0 && r <= MaxCodePoint }

func (ASCII) runes() arbitrary.Arbitrary[rune] {
	return arbitrary.New(asciiGen(), nil)
}

func (Latin1) runes() arbitrary.Arbitrary[rune] {
	return arbitrary.Char()
}

func (Unicode) runes() arbitrary.Arbitrary[rune] {
	return arbitrary.New(unicodeGen(), nil)
}

func (Printable) runes() arbitrary.Arbitrary[rune] {
	return arbitrary.New(arbitrary.SuchThat(unicodeGen(), IsPrintable), nil)
}

func (AllUnicode) runes() arbitrary.Arbitrary[rune] {
	return arbitrary.New(arbitrary.Frequency(
		arbitrary.Weighted[rune]{Weight: asciiWeight, Gen: asciiGen()},
		arbitrary.Weighted[rune]{Weight: wideWeight, Gen: codePointRange(0, MaxCodePoint)},
	), nil)
}

func asciiGen() arbitrary.Gen[rune] {
	return arbitrary.RuneRange(0, MaxASCII)
}

func unicodeGen() arbitrary.Gen[rune] {
	return arbitrary.Frequency(
		arbitrary.Weighted[rune]{Weight: asciiWeight, Gen: asciiGen()},
		arbitrary.Weighted[rune]{Weight: wideWeight, Gen: scalarGen()},
	)
}

// scalarGen draws uniformly from [0, 0xD7FF] ∪ [0xE000, MaxCodePoint].
func scalarGen() arbitrary.Gen[rune] {
	return arbitrary.Map(codePointRange(0, MaxCodePoint-surrogateSpan), func(r rune) rune {
		if r >= SurrogateMin {
			return r + surrogateSpan
		}
		return r
	})
}

// codePointRange draws from [lo, hi] without validating the code points, so
// surrogates can come out of it.
func codePointRange(lo, hi rune) arbitrary.Gen[rune] {
	return arbitrary.Map(arbitrary.FromGopter[int64](gen.Int64Range(int64(lo), int64(hi)), nil).Gen,
		func(v int64) rune { return rune(v) })
}

// IsSurrogate reports whether r lies in the UTF-16 surrogate range.
func IsSurrogate(r rune) bool {
	return r >= SurrogateMin && r <= SurrogateMax
}

// IsPrintable reports whether r is a printable code point.
func IsPrintable(r rune) bool {
	return unicode.IsPrint(r)
}

// Char is a single character of class C.
type Char[C Class] struct {
	value rune
}

// Get returns the code point.
func (c Char[C]) Get() rune { return c.value }

// Equal reports whether both code points are equal.
func (c Char[C]) Equal(other Char[C]) bool { return c.value == other.value }

func (c Char[C]) String() string { return string(c.value) }

// CharOf returns the arbitrary of class C.
func CharOf[C Class]() arbitrary.Arbitrary[Char[C]] {
	var class C
	base := class.runes()
	wrap := func(r rune) Char[C] { return Char[C]{r} }
	return arbitrary.New(arbitrary.Map(base.Gen, wrap), func(c Char[C]) shrink.Seq[Char[C]] {
		return shrink.Map(base.Shrinks(c.value), wrap)
	})
}

// MakeChar wraps r if class C can produce it.
func MakeChar[C Class](r rune) (Char[C], bool) {
	var class C
	if !class.Contains(r) {
		return Char[C]{}, false
	}
	return Char[C]{r}, true
}
