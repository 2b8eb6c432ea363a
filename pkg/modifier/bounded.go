package modifier

import (
	"cmp"
	"fmt"

	"github.com/leanovate/gopter"
	"golang.org/x/exp/constraints"

	"github.com/nomagicln/modgen/pkg/arbitrary"
)

// Wide holds an integer drawn from the whole range of T.
type Wide[T constraints.Integer] struct {
	value T
}

// MakeWide wraps v.
func MakeWide[T constraints.Integer](v T) Wide[T] { return Wide[T]{v} }

// Get returns the payload.
func (w Wide[T]) Get() T { return w.value }

// Equal reports whether both payloads are equal.
func (w Wide[T]) Equal(other Wide[T]) bool { return w.value == other.value }

// Compare orders by payload.
func (w Wide[T]) Compare(other Wide[T]) int { return cmp.Compare(w.value, other.value) }

func (w Wide[T]) String() string { return fmt.Sprint(w.value) }

// WideOf draws uniformly from every value of T and ignores the size
// parameter. Shrinking uses arbitrary.IntegralShrink.
func WideOf[T constraints.Integer]() arbitrary.Arbitrary[Wide[T]] {
	// Truncating a uniform 64-bit draw is uniform over any narrower type.
	gen := func(params *gopter.GenParameters) T {
		return T(params.Rng.Uint64())
	}
	return lift(gen, arbitrary.IntegralShrink[T], nil, func(v T) Wide[T] { return Wide[T]{v} }, Wide[T].Get)
}

// Narrow holds an integer whose magnitude is bounded by the size parameter.
type Narrow[T constraints.Integer] struct {
	value T
}

// MakeNarrow wraps v.
func MakeNarrow[T constraints.Integer](v T) Narrow[T] { return Narrow[T]{v} }

// Get returns the payload.
func (n Narrow[T]) Get() T { return n.value }

// Equal reports whether both payloads are equal.
func (n Narrow[T]) Equal(other Narrow[T]) bool { return n.value == other.value }

// Compare orders by payload.
func (n Narrow[T]) Compare(other Narrow[T]) int { return cmp.Compare(n.value, other.value) }

func (n Narrow[T]) String() string { return fmt.Sprint(n.value) }

// NarrowOf draws uniformly from [-size, size] clamped to T. Shrinking uses
// arbitrary.IntegralShrink.
func NarrowOf[T constraints.Integer]() arbitrary.Arbitrary[Narrow[T]] {
	return lift(arbitrary.SizedIntegral[T](), arbitrary.IntegralShrink[T], nil,
		func(v T) Narrow[T] { return Narrow[T]{v} }, Narrow[T].Get)
}
