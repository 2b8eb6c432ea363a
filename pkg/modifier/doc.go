// Package modifier provides wrapper types that change how values are
// generated and shrunk.
//
// Every wrapper W has a constructor returning an arbitrary.Arbitrary[W]. Its
// Gopter method plugs the wrapper into a gopter property:
//
//	properties.Property("division by a positive divisor", prop.ForAll(
//		func(p modifier.Positive[int]) bool { return 100/p.Get() <= 100 },
//		modifier.PositiveOf(arbitrary.Integer[int]()).Gopter(),
//	))
//
// Invariant wrappers (Sorted, NonEmpty, Positive, NonZero, NonNegative) hold
// for every generated value and every shrink candidate: generation enforces the
// predicate by construction or by retry-filtering, shrinking filters the base
// candidates. Retry-filtering is unbounded, so a base arbitrary that can never
// satisfy the predicate makes generation hang.
//
// Equality is defined on the payload only. The rank of Ranked and the state of
// Stateful take no part in it.
package modifier
