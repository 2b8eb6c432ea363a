package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/charset"
	"github.com/nomagicln/modgen/pkg/filter"
	"github.com/nomagicln/modgen/pkg/modifier"
)

func registerNumeric(c *Catalog) {
	c.Register(intEntry("positive-int", "int greater than zero",
		modifier.PositiveOf(arbitrary.Integer[int]()), modifier.Positive[int].Get, modifier.MakePositive[int]))
	c.Register(intEntry("nonzero-int", "int other than zero",
		modifier.NonZeroOf(arbitrary.Integer[int]()), modifier.NonZero[int].Get, modifier.MakeNonZero[int]))
	c.Register(intEntry("nonnegative-int", "int >= 0, zero one time in six",
		modifier.NonNegativeOf(arbitrary.Integer[int]()), modifier.NonNegative[int].Get, modifier.MakeNonNegative[int]))
	c.Register(intEntry("nonnegative-int8", "int8 >= 0; -128 is resampled",
		modifier.NonNegativeOf(arbitrary.Integer[int8]()), modifier.NonNegative[int8].Get, modifier.MakeNonNegative[int8]))
	c.Register(intEntry("narrow-int", "int in [-size, size]",
		modifier.NarrowOf[int](), modifier.Narrow[int].Get, always(modifier.MakeNarrow[int])))
	c.Register(intEntry("wide-int8", "int8 over its whole range",
		modifier.WideOf[int8](), modifier.Wide[int8].Get, always(modifier.MakeWide[int8])))
	c.Register(intEntry("wide-int64", "int64 over its whole range",
		modifier.WideOf[int64](), modifier.Wide[int64].Get, always(modifier.MakeWide[int64])))
	c.Register(intEntry("wide-uint16", "uint16 over its whole range",
		modifier.WideOf[uint16](), modifier.Wide[uint16].Get, always(modifier.MakeWide[uint16])))
	c.Register(newEntry("positive-float", "float64 in (0, size]",
		modifier.PositiveOf(arbitrary.Float[float64]()),
		func(p modifier.Positive[float64]) filter.Subject { return filter.Number(p.Get(), p.String()) },
		func(s string) (modifier.Positive[float64], error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return modifier.Positive[float64]{}, fmt.Errorf("invalid float %q: %w", s, err)
			}
			return checked(modifier.MakePositive(v))("positive-float", s)
		}))
	c.Register(intEntry("opaque-int", "int printed as (*)",
		modifier.OpaqueOf(arbitrary.Integer[int]()), modifier.Opaque[int].Get, always(modifier.MakeOpaque[int])))
}

func registerCollections(c *Catalog) {
	ints := arbitrary.SliceOf(arbitrary.Integer[int]())
	c.Register(newEntry("sorted-ints", "ascending []int",
		modifier.SortedOf(ints),
		func(s modifier.Sorted[int]) filter.Subject { return filter.Text(s.String()) },
		func(s string) (modifier.Sorted[int], error) {
			v, err := parseInts(s)
			if err != nil {
				return modifier.Sorted[int]{}, err
			}
			return checked(modifier.MakeSorted(v))("sorted-ints", s)
		}))
	c.Register(newEntry("nonempty-ints", "[]int with at least one element",
		modifier.NonEmptyOf(ints),
		func(s modifier.NonEmpty[int]) filter.Subject { return filter.Text(s.String()) },
		func(s string) (modifier.NonEmpty[int], error) {
			v, err := parseInts(s)
			if err != nil {
				return modifier.NonEmpty[int]{}, err
			}
			return checked(modifier.MakeNonEmpty(v))("nonempty-ints", s)
		}))
}

func registerText(c *Catalog) {
	registerClass[charset.ASCII](c, "7-bit code points")
	registerClass[charset.Latin1](c, "code points up to 0xFF, shrinks toward 'a'")
	registerClass[charset.Unicode](c, "mostly ASCII, never surrogates")
	registerClass[charset.Printable](c, "printable code points")
	registerClass[charset.AllUnicode](c, "mostly ASCII, surrogates allowed")
}

func registerClass[C charset.Class](c *Catalog, description string) {
	var class C
	name := class.Name()
	c.Register(newEntry(name+"-char", "character: "+description,
		charset.CharOf[C](),
		func(ch charset.Char[C]) filter.Subject { return filter.Text(ch.String()) },
		func(s string) (charset.Char[C], error) {
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 || size != len(s) {
				return charset.Char[C]{}, fmt.Errorf("expected exactly one character, got %q", s)
			}
			return checked(charset.MakeChar[C](r))(name+"-char", s)
		}))
	c.Register(newEntry(name+"-string", "string: "+description,
		charset.StringOf[C](),
		func(str charset.String[C]) filter.Subject { return filter.Text(str.Get()) },
		func(s string) (charset.String[C], error) {
			return checked(charset.MakeString[C]([]rune(s)))(name+"-string", s)
		}))
}

func intEntry[W fmt.Stringer, T constraints.Integer](name, description string, arb arbitrary.Arbitrary[W], get func(W) T, mk func(T) (W, bool)) Entry {
	return newEntry(name, description, arb,
		func(w W) filter.Subject { return filter.Integer(int64(get(w)), w.String()) },
		func(s string) (W, error) {
			v, err := parseInt[T](s)
			if err != nil {
				var zero W
				return zero, err
			}
			return checked(mk(v))(name, s)
		})
}

func always[T, W any](wrap func(T) W) func(T) (W, bool) {
	return func(v T) (W, bool) { return wrap(v), true }
}

func checked[W any](w W, ok bool) func(name, input string) (W, error) {
	return func(name, input string) (W, error) {
		if !ok {
			return w, fmt.Errorf("%q is not a valid %s value", input, name)
		}
		return w, nil
	}
}

func parseInt[T constraints.Integer](s string) (T, error) {
	s = strings.TrimSpace(s)
	lo, hi := arbitrary.Bounds[T]()
	if arbitrary.Signed[T]() {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < int64(lo) || v > int64(hi) {
			return 0, fmt.Errorf("invalid integer %q: want a value in [%d, %d]", s, lo, hi)
		}
		return T(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > uint64(hi) {
		return 0, fmt.Errorf("invalid integer %q: want a value in [0, %d]", s, hi)
	}
	return T(v), nil
}

// parseInts parses a comma separated list. An empty input is the empty list.
func parseInts(s string) ([]int, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := parseInt[int](f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

