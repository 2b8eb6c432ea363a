// Package catalog registers the named value classes the modgen CLI can sample
// and shrink.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leanovate/gopter"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/filter"
	"github.com/nomagicln/modgen/pkg/modifier"
	"github.com/nomagicln/modgen/pkg/shrink"
)

// Order selects how shrink candidates are explored.
type Order string

// Shrink orders.
const (
	OrderDefault Order = "default"
	OrderDouble  Order = "double"
	OrderRanked  Order = "ranked"
)

// ParseOrder parses an order name.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case OrderDefault, OrderDouble, OrderRanked:
		return o, nil
	case "":
		return OrderDefault, nil
	default:
		return "", fmt.Errorf("unknown shrink order %q (want default, double or ranked)", s)
	}
}

// Entry is one named class.
type Entry struct {
	Name        string
	Description string

	// Sample draws one value and exposes it to filter expressions.
	Sample arbitrary.Gen[filter.Subject]

	shrinkText func(input string, order Order, rank int) (shrink.Seq[string], error)
}

// CanShrink reports whether the entry accepts input values for shrinking.
func (e Entry) CanShrink() bool {
	return e.shrinkText != nil
}

// Shrink parses input as a value of the class and lists its shrink candidates
// in the given order. rank only matters for OrderRanked.
func (e Entry) Shrink(input string, order Order, rank int) (shrink.Seq[string], error) {
	if e.shrinkText == nil {
		return nil, fmt.Errorf("class %s does not support shrinking from the command line", e.Name)
	}
	return e.shrinkText(input, order, rank)
}

// UnknownClassError indicates a class name that is not registered.
type UnknownClassError struct {
	Name  string
	Known []string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown class '%s'", e.Name)
}

// Catalog is a set of entries indexed by name.
type Catalog struct {
	entries map[string]Entry
}

// New returns a catalog holding the built-in classes.
func New() *Catalog {
	c := &Catalog{entries: make(map[string]Entry)}
	registerNumeric(c)
	registerCollections(c)
	registerText(c)
	return c
}

// Register adds or replaces an entry.
func (c *Catalog) Register(e Entry) {
	c.entries[e.Name] = e
}

// Lookup returns the entry called name.
func (c *Catalog) Lookup(name string) (Entry, error) {
	e, ok := c.entries[name]
	if !ok {
		return Entry{}, &UnknownClassError{Name: name, Known: c.Names()}
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the registered entries sorted by name.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, c.entries[name])
	}
	return entries
}

// newEntry builds an entry for the wrapper type W. A nil parse disables
// shrinking from the command line.
func newEntry[W fmt.Stringer](name, description string, arb arbitrary.Arbitrary[W], subject func(W) filter.Subject, parse func(string) (W, error)) Entry {
	e := Entry{
		Name:        name,
		Description: description,
		Sample: func(params *gopter.GenParameters) filter.Subject {
			return subject(arb.Gen(params))
		},
	}
	if parse == nil {
		return e
	}
	e.shrinkText = func(input string, order Order, rank int) (shrink.Seq[string], error) {
		w, err := parse(input)
		if err != nil {
			return nil, err
		}
		return orderedShrinks(arb, w, order, rank)
	}
	return e
}

func orderedShrinks[W fmt.Stringer](arb arbitrary.Arbitrary[W], w W, order Order, rank int) (shrink.Seq[string], error) {
	switch order {
	case OrderDefault, "":
		return shrink.Map(arb.Shrinks(w), func(v W) string { return v.String() }), nil
	case OrderDouble:
		candidates := modifier.DoubleOf(arb).Shrinks(modifier.MakeDouble(w))
		return shrink.Map(candidates, func(v modifier.Double[W]) string { return v.Get().String() }), nil
	case OrderRanked:
		if rank < 0 {
			return nil, fmt.Errorf("rank must not be negative, got %d", rank)
		}
		candidates := modifier.RankedOf(arb).Shrinks(modifier.MakeRanked(w, rank))
		return shrink.Map(candidates, func(v modifier.Ranked[W]) string {
			return fmt.Sprintf("#%d %s", v.Rank(), v.Get().String())
		}), nil
	default:
		return nil, fmt.Errorf("unknown shrink order %q", order)
	}
}
