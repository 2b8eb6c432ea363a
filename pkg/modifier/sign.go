package modifier

import (
	"cmp"
	"fmt"

	"github.com/nomagicln/modgen/pkg/arbitrary"
)

// Positive holds a number greater than zero.
type Positive[T arbitrary.Number] struct {
	value T
}

// MakePositive wraps v if it is greater than zero.
func MakePositive[T arbitrary.Number](v T) (Positive[T], bool) {
	if !isPositive(v) {
		return Positive[T]{}, false
	}
	return Positive[T]{v}, true
}

// Get returns the payload.
func (p Positive[T]) Get() T { return p.value }

// Equal reports whether both payloads are equal.
func (p Positive[T]) Equal(other Positive[T]) bool { return p.value == other.value }

// Compare orders by payload.
func (p Positive[T]) Compare(other Positive[T]) int { return cmp.Compare(p.value, other.value) }

func (p Positive[T]) String() string { return fmt.Sprint(p.value) }

// PositiveOf draws |x| from base until it is greater than zero. Shrink
// candidates of base that are not positive are dropped.
func PositiveOf[T arbitrary.Number](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[Positive[T]] {
	gen := arbitrary.SuchThat(arbitrary.Map(base.Gen, arbitrary.Abs[T]), isPositive[T])
	return lift(gen, base.Shrinks, isPositive[T], func(v T) Positive[T] { return Positive[T]{v} }, Positive[T].Get)
}

// NonZero holds a number other than zero.
type NonZero[T arbitrary.Number] struct {
	value T
}

// MakeNonZero wraps v if it is not zero.
func MakeNonZero[T arbitrary.Number](v T) (NonZero[T], bool) {
	if !isNonZero(v) {
		return NonZero[T]{}, false
	}
	return NonZero[T]{v}, true
}

// Get returns the payload.
func (n NonZero[T]) Get() T { return n.value }

// Equal reports whether both payloads are equal.
func (n NonZero[T]) Equal(other NonZero[T]) bool { return n.value == other.value }

// Compare orders by payload.
func (n NonZero[T]) Compare(other NonZero[T]) int { return cmp.Compare(n.value, other.value) }

func (n NonZero[T]) String() string { return fmt.Sprint(n.value) }

// NonZeroOf draws from base until the value is not zero.
func NonZeroOf[T arbitrary.Number](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[NonZero[T]] {
	gen := arbitrary.SuchThat(base.Gen, isNonZero[T])
	return lift(gen, base.Shrinks, isNonZero[T], func(v T) NonZero[T] { return NonZero[T]{v} }, NonZero[T].Get)
}

// NonNegative holds a number greater than or equal to zero.
type NonNegative[T arbitrary.Number] struct {
	value T
}

// MakeNonNegative wraps v if it is not negative.
func MakeNonNegative[T arbitrary.Number](v T) (NonNegative[T], bool) {
	if !isNonNegative(v) {
		return NonNegative[T]{}, false
	}
	return NonNegative[T]{v}, true
}

// Get returns the payload.
func (n NonNegative[T]) Get() T { return n.value }

// Equal reports whether both payloads are equal.
func (n NonNegative[T]) Equal(other NonNegative[T]) bool { return n.value == other.value }

// Compare orders by payload.
func (n NonNegative[T]) Compare(other NonNegative[T]) int { return cmp.Compare(n.value, other.value) }

func (n NonNegative[T]) String() string { return fmt.Sprint(n.value) }

// Weights of the two NonNegative alternatives. The ratio is a tuning constant.
const (
	nonNegativeAbsWeight  = 5
	nonNegativeZeroWeight = 1
)

// NonNegativeOf picks |x| from base five times as often as a literal zero.
// The absolute value of the most negative integer of a signed type is still
// negative; such draws are discarded and drawn again.
func NonNegativeOf[T arbitrary.Number](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[NonNegative[T]] {
	gen := arbitrary.SuchThat(arbitrary.Frequency(
		arbitrary.Weighted[T]{Weight: nonNegativeAbsWeight, Gen: arbitrary.Map(base.Gen, arbitrary.Abs[T])},
		arbitrary.Weighted[T]{Weight: nonNegativeZeroWeight, Gen: arbitrary.Constant[T](0)},
	), isNonNegative[T])
	return lift(gen, base.Shrinks, isNonNegative[T], func(v T) NonNegative[T] { return NonNegative[T]{v} }, NonNegative[T].Get)
}

func isPositive[T arbitrary.Number](v T) bool    { return v > 0 }
func isNonZero[T arbitrary.Number](v T) bool     { return v != 0 }
func isNonNegative[T arbitrary.Number](v T) bool { return v >= 0 }
