package modifier

import (
	"cmp"
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// OpaquePlaceholder is how an Opaque value prints.
const OpaquePlaceholder = "(*)"

// Opaque hides its payload when printed. Generation and shrinking are those of
// the payload.
type Opaque[T any] struct {
	value T
}

// MakeOpaque wraps v.
func MakeOpaque[T any](v T) Opaque[T] { return Opaque[T]{v} }

// Get returns the payload.
func (o Opaque[T]) Get() T { return o.value }

// Equal reports whether both payloads are deeply equal.
func (o Opaque[T]) Equal(other Opaque[T]) bool { return reflect.DeepEqual(o.value, other.value) }

func (Opaque[T]) String() string   { return OpaquePlaceholder }
func (Opaque[T]) GoString() string { return OpaquePlaceholder }

// Format prints the placeholder for every verb.
func (Opaque[T]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, OpaquePlaceholder)
}

// OpaqueOf wraps base in Opaque.
func OpaqueOf[T any](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[Opaque[T]] {
	return lift(base.Gen, base.Shrinks, nil, func(v T) Opaque[T] { return Opaque[T]{v} }, Opaque[T].Get)
}

// NoShrink generates like its payload and never shrinks.
type NoShrink[T any] struct {
	value T
}

// MakeNoShrink wraps v.
func MakeNoShrink[T any](v T) NoShrink[T] { return NoShrink[T]{v} }

// Get returns the payload.
func (n NoShrink[T]) Get() T { return n.value }

// Equal reports whether both payloads are deeply equal.
func (n NoShrink[T]) Equal(other NoShrink[T]) bool { return reflect.DeepEqual(n.value, other.value) }

func (n NoShrink[T]) String() string { return fmt.Sprint(n.value) }

// NoShrinkOf wraps base in NoShrink.
func NoShrinkOf[T any](base arbitrary.Arbitrary[T]) arbitrary.Arbitrary[NoShrink[T]] {
	return arbitrary.New(
		arbitrary.Map(base.Gen, func(v T) NoShrink[T] { return NoShrink[T]{v} }),
		arbitrary.NoShrink[NoShrink[T]],
	)
}

// Sorted holds a slice in ascending order.
type Sorted[T cmp.Ordered] struct {
	value []T
}

// MakeSorted wraps v if it is sorted in ascending order.
func MakeSorted[T cmp.Ordered](v []T) (Sorted[T], bool) {
	if !slices.IsSorted(v) {
		return Sorted[T]{}, false
	}
	return Sorted[T]{v}, true
}

// Get returns the payload.
func (s Sorted[T]) Get() []T { return s.value }

// Equal reports whether both payloads hold the same elements.
func (s Sorted[T]) Equal(other Sorted[T]) bool { return slices.Equal(s.value, other.value) }

func (s Sorted[T]) String() string { return fmt.Sprint(s.value) }

// SortedOf sorts the slices generated by base. Shrink candidates of base that
// are not sorted are dropped.
func SortedOf[T cmp.Ordered](base arbitrary.Arbitrary[[]T]) arbitrary.Arbitrary[Sorted[T]] {
	gen := arbitrary.Map(base.Gen, func(v []T) []T {
		sorted := slices.Clone(v)
		slices.Sort(sorted)
		return sorted
	})
	return lift(gen, base.Shrinks, slices.IsSorted[[]T], func(v []T) Sorted[T] { return Sorted[T]{v} }, Sorted[T].Get)
}

// NonEmpty holds a slice with at least one element.
type NonEmpty[T any] struct {
	value []T
}

// MakeNonEmpty wraps v if it has at least one element.
func MakeNonEmpty[T any](v []T) (NonEmpty[T], bool) {
	if len(v) == 0 {
		return NonEmpty[T]{}, false
	}
	return NonEmpty[T]{v}, true
}

// Get returns the payload.
func (n NonEmpty[T]) Get() []T { return n.value }

// Equal reports whether both payloads are deeply equal.
func (n NonEmpty[T]) Equal(other NonEmpty[T]) bool { return reflect.DeepEqual(n.value, other.value) }

func (n NonEmpty[T]) String() string { return fmt.Sprint(n.value) }

// NonEmptyOf retries base until it yields a non-empty slice.
func NonEmptyOf[T any](base arbitrary.Arbitrary[[]T]) arbitrary.Arbitrary[NonEmpty[T]] {
	nonEmpty := func(v []T) bool { return len(v) > 0 }
	return lift(arbitrary.SuchThat(base.Gen, nonEmpty), base.Shrinks, nonEmpty,
		func(v []T) NonEmpty[T] { return NonEmpty[T]{v} }, NonEmpty[T].Get)
}

// lift builds the arbitrary of a wrapper W around payload T. Shrink candidates
// of the payload failing keep are dropped; a nil keep keeps all of them.
func lift[T, W any](gen arbitrary.Gen[T], shrinks arbitrary.Shrinker[T], keep func(T) bool, wrap func(T) W, unwrap func(W) T) arbitrary.Arbitrary[W] {
	return arbitrary.New(
		arbitrary.Map(gen, wrap),
		func(w W) shrink.Seq[W] {
			candidates := shrinks(unwrap(w))
			if keep != nil {
				candidates = candidates.Filter(keep)
			}
			return shrink.Map(candidates, wrap)
		},
	)
}
