package proptest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Seed generates RNG seeds for drawing nested samples inside a property.
func Seed() gopter.Gen {
	return gen.Int64()
}

// Size generates size parameters in [0, max].
func Size(max int) gopter.Gen {
	return gen.IntRange(0, max)
}

// Ints generates []int values with small elements.
func Ints() gopter.Gen {
	return gen.SliceOf(gen.IntRange(-1000, 1000))
}

// Rank generates shrink ranks in [0, max].
func Rank(max int) gopter.Gen {
	return gen.IntRange(0, max)
}
