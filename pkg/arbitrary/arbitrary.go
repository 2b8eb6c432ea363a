// Package arbitrary provides typed generator/shrinker pairs on top of gopter.
//
// A gopter.Gen yields untyped results and attaches its shrinker to every
// result. Arbitrary keeps both halves typed and converts to gopter only at the
// boundary, so a property driven by gopter sees exactly the values produced by
// the typed generator and the typed shrinker.
package arbitrary

import (
	"math/rand"
	"reflect"

	"github.com/leanovate/gopter"

	"github.com/nomagicln/modgen/pkg/shrink"
)

// Gen draws one value from the size and random source carried by params.
type Gen[T any] func(params *gopter.GenParameters) T

// Shrinker lists the candidates simpler than value.
type Shrinker[T any] func(value T) shrink.Seq[T]

// Arbitrary couples a generator with the shrinker for the values it produces.
type Arbitrary[T any] struct {
	Gen    Gen[T]
	Shrink Shrinker[T]
}

// Weighted is one alternative of Frequency.
type Weighted[T any] struct {
	Weight int
	Gen    Gen[T]
}

// New builds an Arbitrary. A nil shrinker never shrinks.
func New[T any](gen Gen[T], shrinker Shrinker[T]) Arbitrary[T] {
	return Arbitrary[T]{Gen: gen, Shrink: shrinker}
}

// Shrinks returns the shrink candidates of value.
func (a Arbitrary[T]) Shrinks(value T) shrink.Seq[T] {
	if a.Shrink == nil {
		return shrink.Empty[T]()
	}
	if s := a.Shrink(value); s != nil {
		return s
	}
	return shrink.Empty[T]()
}

// Sample draws n values.
func (a Arbitrary[T]) Sample(params *gopter.GenParameters, n int) []T {
	out := make([]T, 0, n)
	for range n {
		out = append(out, a.Gen(params))
	}
	return out
}

// GopterShrinker exposes the typed shrinker as a gopter.Shrinker.
func (a Arbitrary[T]) GopterShrinker() gopter.Shrinker {
	return func(value interface{}) gopter.Shrink {
		typed, ok := value.(T)
		if !ok {
			return gopter.NoShrink
		}
		return a.Shrinks(typed).Gopter()
	}
}

// Gopter exposes the Arbitrary as a gopter.Gen usable with prop.ForAll.
func (a Arbitrary[T]) Gopter() gopter.Gen {
	resultType := reflect.TypeOf((*T)(nil)).Elem()
	shrinker := a.GopterShrinker()
	return func(params *gopter.GenParameters) *gopter.GenResult {
		return &gopter.GenResult{
			Result:     a.Gen(params),
			ResultType: resultType,
			Shrinker:   shrinker,
		}
	}
}

// FromGopter adopts a gopter generator and shrinker. Results rejected by the
// generator's own sieve are drawn again.
func FromGopter[T any](g gopter.Gen, shrinker gopter.Shrinker) Arbitrary[T] {
	var s Shrinker[T]
	if shrinker != nil {
		s = func(value T) shrink.Seq[T] {
			return shrink.FromGopter[T](shrinker(value))
		}
	}
	return New(draw[T](g), s)
}

// draw retry-filters g on its sieve and on the result type.
func draw[T any](g gopter.Gen) Gen[T] {
	return func(params *gopter.GenParameters) T {
		for {
			result := g(params)
			if v, ok := result.Retrieve(); ok {
				if typed, ok := v.(T); ok {
					return typed
				}
			}
		}
	}
}

// Params returns deterministic generation parameters for the given seed and size.
func Params(seed int64, size int) *gopter.GenParameters {
	params := gopter.DefaultGenParameters()
	params.MinSize = 0
	params.MaxSize = max(size, 0)
	params.Rng = rand.New(rand.NewSource(seed))
	return params
}

// Size reports the ambient size parameter.
func Size(params *gopter.GenParameters) int {
	return max(params.MaxSize, 0)
}

// Sized builds a generator from the current size.
func Sized[T any](f func(size int) Gen[T]) Gen[T] {
	return func(params *gopter.GenParameters) T {
		return f(Size(params))(params)
	}
}

// Constant always yields v.
func Constant[T any](v T) Gen[T] {
	return func(*gopter.GenParameters) T {
		return v
	}
}

// Map applies f to every generated value.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return func(params *gopter.GenParameters) U {
		return f(g(params))
	}
}

// SuchThat resamples g until pred holds. Every retry draws at a size one
// larger than the previous one, so predicates that only fail at small sizes,
// such as x != 0 at size 0, are eventually met. There is no retry bound: a
// predicate g can never satisfy makes generation loop forever.
func SuchThat[T any](g Gen[T], pred func(T) bool) Gen[T] {
	return func(params *gopter.GenParameters) T {
		if v := g(params); pred(v) {
			return v
		}
		retry := *params
		for {
			retry.MaxSize = max(retry.MaxSize, 0) + 1
			if v := g(&retry); pred(v) {
				return v
			}
		}
	}
}

// Frequency picks one alternative with probability proportional to its weight.
// Alternatives with a non-positive weight are never picked. It panics when no
// alternative has a positive weight.
func Frequency[T any](choices ...Weighted[T]) Gen[T] {
	kept := make([]Weighted[T], 0, len(choices))
	total := 0
	for _, c := range choices {
		if c.Weight > 0 {
			kept = append(kept, c)
			total += c.Weight
		}
	}
	if total == 0 {
		panic("arbitrary: Frequency needs at least one positive weight")
	}
	return func(params *gopter.GenParameters) T {
		n := params.Rng.Intn(total)
		for _, c := range kept {
			if n < c.Weight {
				return c.Gen(params)
			}
			n -= c.Weight
		}
		return kept[len(kept)-1].Gen(params)
	}
}

// NoShrink is a shrinker without candidates.
func NoShrink[T any](T) shrink.Seq[T] {
	return shrink.Empty[T]()
}
