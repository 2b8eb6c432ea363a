// Package shrink provides typed, lazily evaluated sequences of shrink candidates.
//
// A Seq is a pull iterator in the style of gopter.Shrink: each call yields the
// next candidate, and the second return value reports whether one was produced.
// Sequences are finite and single-use. A consumer may stop pulling at any point;
// nothing beyond the last pulled element is ever computed.
package shrink

import (
	"github.com/leanovate/gopter"
)

// Seq is a finite, lazily produced sequence of candidates.
type Seq[T any] func() (T, bool)

// Indexed pairs a candidate with its position in the sequence it was taken from.
type Indexed[T any] struct {
	Index int
	Value T
}

// Empty returns a sequence without elements.
func Empty[T any]() Seq[T] {
	return func() (T, bool) {
		var zero T
		return zero, false
	}
}

// Of returns a sequence yielding values in order.
func Of[T any](values ...T) Seq[T] {
	idx := 0
	return func() (T, bool) {
		if idx >= len(values) {
			var zero T
			return zero, false
		}
		v := values[idx]
		idx++
		return v, true
	}
}

// FromGopter adapts an untyped gopter.Shrink. Elements that are not of type T
// are skipped.
func FromGopter[T any](s gopter.Shrink) Seq[T] {
	if s == nil {
		return Empty[T]()
	}
	return func() (T, bool) {
		for {
			v, ok := s()
			if !ok {
				var zero T
				return zero, false
			}
			if typed, ok := v.(T); ok {
				return typed, true
			}
		}
	}
}

// Gopter converts the sequence into a gopter.Shrink.
func (s Seq[T]) Gopter() gopter.Shrink {
	if s == nil {
		return gopter.NoShrink
	}
	return func() (interface{}, bool) {
		v, ok := s()
		if !ok {
			return nil, false
		}
		return v, true
	}
}

// Lazy defers building the sequence until its first element is requested.
func Lazy[T any](build func() Seq[T]) Seq[T] {
	var s Seq[T]
	return func() (T, bool) {
		if s == nil {
			if s = build(); s == nil {
				s = Empty[T]()
			}
		}
		return s()
	}
}

// Filter keeps the candidates satisfying pred.
func (s Seq[T]) Filter(pred func(T) bool) Seq[T] {
	return func() (T, bool) {
		for {
			v, ok := s()
			if !ok || pred(v) {
				return v, ok
			}
		}
	}
}

// Take materializes at most n candidates.
func (s Seq[T]) Take(n int) []T {
	out := make([]T, 0, max(n, 0))
	for len(out) < n {
		v, ok := s()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// All drains the sequence.
func (s Seq[T]) All() []T {
	out := []T{}
	for {
		v, ok := s()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// SplitAt pulls the first n candidates into front and returns the unconsumed
// remainder as rest. front is shorter than n when the sequence is.
func (s Seq[T]) SplitAt(n int) (front []T, rest Seq[T]) {
	front = s.Take(n)
	return front, s
}

// Map transforms every candidate with f.
func Map[T, U any](s Seq[T], f func(T) U) Seq[U] {
	return func() (U, bool) {
		v, ok := s()
		if !ok {
			var zero U
			return zero, false
		}
		return f(v), true
	}
}

// Concat yields all candidates of each sequence in turn.
func Concat[T any](seqs ...Seq[T]) Seq[T] {
	idx := 0
	return func() (T, bool) {
		for idx < len(seqs) {
			if seqs[idx] != nil {
				if v, ok := seqs[idx](); ok {
					return v, true
				}
			}
			idx++
		}
		var zero T
		return zero, false
	}
}

// FlatMap yields, for every candidate of s, all candidates of f(candidate).
func FlatMap[T, U any](s Seq[T], f func(T) Seq[U]) Seq[U] {
	var inner Seq[U]
	return func() (U, bool) {
		for {
			if inner != nil {
				if v, ok := inner(); ok {
					return v, true
				}
				inner = nil
			}
			outer, ok := s()
			if !ok {
				var zero U
				return zero, false
			}
			inner = f(outer)
		}
	}
}

// Interleave alternates between a and b, starting with a. Once either side is
// exhausted the remainder of the other follows. Every element of a and b is
// yielded exactly once.
func Interleave[T any](a, b Seq[T]) Seq[T] {
	var aDone, bDone bool
	fromA := true
	return func() (T, bool) {
		for !aDone || !bDone {
			useA := fromA
			fromA = !fromA
			if useA {
				if aDone {
					continue
				}
				if v, ok := a(); ok {
					return v, true
				}
				aDone = true
			} else {
				if bDone {
					continue
				}
				if v, ok := b(); ok {
					return v, true
				}
				bDone = true
			}
		}
		var zero T
		return zero, false
	}
}

// Enumerate tags every candidate with its zero-based position.
func Enumerate[T any](s Seq[T]) Seq[Indexed[T]] {
	idx := 0
	return func() (Indexed[T], bool) {
		v, ok := s()
		if !ok {
			return Indexed[T]{}, false
		}
		item := Indexed[T]{Index: idx, Value: v}
		idx++
		return item, true
	}
}
