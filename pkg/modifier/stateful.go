package modifier

import (
	"fmt"
	"reflect"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// Strategy is a user-defined shrink state machine over payloads of type T
// with states of type S. Init gives the state of a generated value. Step lists
// the successors of a value in a state; a pair without successors is terminal.
type Strategy[T, S any] interface {
	Init(value T) S
	Step(value T, state S) shrink.Seq[Stateful[T, S]]
}

// StrategyFuncs adapts a pair of functions to Strategy.
type StrategyFuncs[T, S any] struct {
	InitFunc func(value T) S
	StepFunc func(value T, state S) shrink.Seq[Stateful[T, S]]
}

// Init calls InitFunc.
func (f StrategyFuncs[T, S]) Init(value T) S { return f.InitFunc(value) }

// Step calls StepFunc.
func (f StrategyFuncs[T, S]) Step(value T, state S) shrink.Seq[Stateful[T, S]] {
	return f.StepFunc(value, state)
}

// Stateful carries a payload together with the shrink state attached to it.
type Stateful[T, S any] struct {
	value T
	state S
}

// WithState pairs value with state. Strategies use it to build successors.
func WithState[T, S any](value T, state S) Stateful[T, S] {
	return Stateful[T, S]{value: value, state: state}
}

// Get returns the payload.
func (s Stateful[T, S]) Get() T { return s.value }

// State returns the shrink state.
func (s Stateful[T, S]) State() S { return s.state }

// Equal reports whether both payloads are deeply equal. States are ignored.
func (s Stateful[T, S]) Equal(other Stateful[T, S]) bool {
	return reflect.DeepEqual(s.value, other.value)
}

func (s Stateful[T, S]) String() string { return fmt.Sprint(s.value) }

// StatefulOf generates (x, strategy.Init(x)) for x drawn from base. Shrinking
// ignores base entirely: the candidates of (x, s) are exactly
// strategy.Step(x, s), unfiltered and in the order given.
func StatefulOf[T, S any](base arbitrary.Arbitrary[T], strategy Strategy[T, S]) arbitrary.Arbitrary[Stateful[T, S]] {
	return arbitrary.New(
		arbitrary.Map(base.Gen, func(v T) Stateful[T, S] { return WithState(v, strategy.Init(v)) }),
		func(s Stateful[T, S]) shrink.Seq[Stateful[T, S]] {
			return strategy.Step(s.value, s.state)
		},
	)
}
