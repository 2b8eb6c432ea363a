package modifier

import (
	"fmt"
	"reflect"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// Double shrinks in one or two steps of its payload's shrinker.
type Double[T any] struct {
	value T
}

// MakeDouble wraps v.
func MakeDouble[T any](v T) Double[T] { return Double[T]{v} }

// Get returns the payload.
func (d Double[T]) Get() T { return d.value }

// Equal reports whether both payloads are deeply equal.
func (d Double[T]) Equal(other Double[T]) bool { return reflect.DeepEqual(d.value, other.value) }

func (d Double[T]) String() string { return fmt.Sprint(d.value) }

// DoubleOf offers every candidate y of the base shrinker first, followed by
// every candidate of every y. Duplicates are kept.
func DoubleOf[T any](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[Double[T]] {
	wrap := func(v T) Double[T] { return Double[T]{v} }
	return arbitrary.New(
		arbitrary.Map(base.Gen, wrap),
		func(d Double[T]) shrink.Seq[Double[T]] {
			twoSteps := shrink.FlatMap(base.Shrinks(d.value), base.Shrinks)
			return shrink.Map(shrink.Concat(base.Shrinks(d.value), twoSteps), wrap)
		},
	)
}

// Ranked records the position its payload had among the candidates it was
// shrunk from, and revisits that region first on the next shrink.
type Ranked[T any] struct {
	rank  int
	value T
}

// MakeRanked wraps v with the given rank.
func MakeRanked[T any](v T, rank int) Ranked[T] { return Ranked[T]{rank: rank, value: v} }

// Get returns the payload.
func (r Ranked[T]) Get() T { return r.value }

// Rank returns the position of the payload in the candidate list it came
// from. Generated values have rank 0.
func (r Ranked[T]) Rank() int { return r.rank }

// WithRank returns a copy of r carrying rank.
func (r Ranked[T]) WithRank(rank int) Ranked[T] {
	r.rank = rank
	return r
}

// Equal reports whether both payloads are deeply equal. Ranks are ignored.
func (r Ranked[T]) Equal(other Ranked[T]) bool { return reflect.DeepEqual(r.value, other.value) }

func (r Ranked[T]) String() string { return fmt.Sprint(r.value) }

// rankSlack is how far behind the last successful rank exploration restarts.
const rankSlack = 2

// RankedOf reorders the base shrinker. With base candidates ys numbered from
// zero and k = max(0, rank-2), the candidates are ys[k], ys[0], ys[k+1],
// ys[1], ... until one side runs out, then the rest of the other. The result
// is a permutation of ys; each candidate carries its index in ys as rank.
func RankedOf[T any](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[Ranked[T]] {
	return arbitrary.New(
		arbitrary.Map(base.Gen, func(v T) Ranked[T] { return Ranked[T]{value: v} }),
		func(r Ranked[T]) shrink.Seq[Ranked[T]] {
			return shrink.Lazy(func() shrink.Seq[Ranked[T]] {
				numbered := shrink.Map(shrink.Enumerate(base.Shrinks(r.value)),
					func(c shrink.Indexed[T]) Ranked[T] { return Ranked[T]{rank: c.Index, value: c.Value} })
				front, rest := numbered.SplitAt(max(0, r.rank-rankSlack))
				return shrink.Interleave(rest, shrink.Of(front...))
			})
		},
	)
}
