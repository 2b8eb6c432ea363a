package arbitrary

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"golang.org/x/exp/constraints"

	"github.com/nomagicln/modgen/pkg/shrink"
)

// Number is any built-in integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Bounds returns the smallest and largest value representable by T.
func Bounds[T constraints.Integer]() (lo, hi T) {
	hi = 1
	for next := hi<<1 | 1; next > hi; next = hi<<1 | 1 {
		hi = next
	}
	if Signed[T]() {
		lo = -hi - 1
	}
	return lo, hi
}

// Signed reports whether T is a signed integer type.
func Signed[T constraints.Integer]() bool {
	var zero T
	return ^zero < zero
}

// Abs returns |v|. For the most negative value of a signed type the result
// wraps around and stays negative.
func Abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// SizedIntegral draws uniformly from [-size, size], clamped to the range of T.
func SizedIntegral[T constraints.Integer]() Gen[T] {
	lo, hi := Bounds[T]()
	if Signed[T]() {
		return func(params *gopter.GenParameters) T {
			n := int64(Size(params))
			return T(draw[int64](gen.Int64Range(max(-n, int64(lo)), min(n, int64(hi))))(params))
		}
	}
	return func(params *gopter.GenParameters) T {
		n := uint64(Size(params))
		return T(draw[uint64](gen.UInt64Range(0, min(n, uint64(hi))))(params))
	}
}

// Integer is the default arbitrary for integer types: sized generation and
// IntegralShrink.
func Integer[T constraints.Integer]() Arbitrary[T] {
	return New(SizedIntegral[T](), IntegralShrink[T])
}

// IntegralShrink lists the shrink candidates of an integer x:
// -x when x is negative and -x is representable, then 0, then x-i for
// i = x/2, x/4, ... until i reaches 0. Every candidate is strictly closer
// to zero than x, or is the positive mirror of a negative x.
func IntegralShrink[T constraints.Integer](x T) shrink.Seq[T] {
	if x == 0 {
		return shrink.Empty[T]()
	}
	var head []T
	if x < 0 && -x > 0 {
		head = append(head, -x)
	}
	head = append(head, 0)
	i := x / 2
	var halves shrink.Seq[T] = func() (T, bool) {
		if i == 0 {
			return 0, false
		}
		v := x - i
		i /= 2
		return v, true
	}
	return shrink.Concat(shrink.Of(head...), halves)
}

// Float is the default arbitrary for floating point types: uniform in
// [-size, size], shrunk with gopter's float shrinker.
func Float[T constraints.Float]() Arbitrary[T] {
	g := func(params *gopter.GenParameters) T {
		n := float64(Size(params))
		return T(draw[float64](gen.Float64Range(-n, n))(params))
	}
	s := func(v T) shrink.Seq[T] {
		return shrink.Map(shrink.FromGopter[float64](gen.Float64Shrinker(float64(v))),
			func(f float64) T { return T(f) })
	}
	return New(g, s)
}
