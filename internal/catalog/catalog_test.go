package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nomagicln/modgen/pkg/filter"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewRegistersBuiltins(t *testing.T) {
	c := New()
	names := c.Names()

	for _, want := range []string{
		"positive-int", "nonzero-int", "nonnegative-int", "narrow-int",
		"wide-int8", "sorted-ints", "nonempty-ints", "opaque-int",
		"ascii-char", "latin1-string", "printable-string", "all-unicode-char",
	} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)

	entries := c.Entries()
	require.Len(t, entries, len(names))
	for i, e := range entries {
		assert.Equal(t, names[i], e.Name)
		assert.NotEmpty(t, e.Description)
		assert.True(t, e.CanShrink(), e.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := New().Lookup("postive-int")

	var unknown *UnknownClassError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "postive-int", unknown.Name)
	assert.Contains(t, unknown.Known, "positive-int")
	assert.Equal(t, "unknown class 'postive-int'", err.Error())
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{
		"":        OrderDefault,
		"default": OrderDefault,
		"Double":  OrderDouble,
		"ranked":  OrderRanked,
	} {
		got, err := ParseOrder(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseOrder("smart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shrink order")
}

func shrinkAll(t *testing.T, class, input string, order Order, rank int) []string {
	t.Helper()
	e, err := New().Lookup(class)
	require.NoError(t, err)
	seq, err := e.Shrink(input, order, rank)
	require.NoError(t, err)
	return seq.All()
}

func TestShrinkOrders(t *testing.T) {
	assert.Equal(t, []string{"5", "8", "9"}, shrinkAll(t, "positive-int", "10", OrderDefault, 0))
	assert.Equal(t, []string{"0", "5", "8", "9"}, shrinkAll(t, "narrow-int", "10", OrderDefault, 0))

	double := shrinkAll(t, "narrow-int", "4", OrderDouble, 0)
	// one step: 0 2 3; two steps: from 2 [0 1], from 3 [0 2]
	assert.Equal(t, []string{"0", "2", "3", "0", "1", "0", "2"}, double)

	ranked := shrinkAll(t, "narrow-int", "10", OrderRanked, 4)
	assert.Equal(t, []string{"#2 8", "#0 0", "#3 9", "#1 5"}, ranked)

	assert.Equal(t, []string{"(*)", "(*)", "(*)", "(*)"}, shrinkAll(t, "opaque-int", "10", OrderDefault, 0))
}

func TestShrinkRejectsInvalidInput(t *testing.T) {
	c := New()
	tests := []struct {
		class string
		input string
		want  string
	}{
		{"positive-int", "0", "not a valid positive-int"},
		{"positive-int", "abc", "invalid integer"},
		{"wide-int8", "200", "want a value in [-128, 127]"},
		{"wide-uint16", "-1", "want a value in [0, 65535]"},
		{"sorted-ints", "3,1", "not a valid sorted-ints"},
		{"nonempty-ints", "[]", "not a valid nonempty-ints"},
		{"ascii-char", "é", "not a valid ascii-char"},
		{"ascii-char", "ab", "exactly one character"},
		{"positive-float", "-2", "not a valid positive-float"},
		{"positive-float", "x", "invalid float"},
	}

	for _, tt := range tests {
		t.Run(tt.class+" "+tt.input, func(t *testing.T) {
			e, err := c.Lookup(tt.class)
			require.NoError(t, err)
			_, err = e.Shrink(tt.input, OrderDefault, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	e, err := c.Lookup("narrow-int")
	require.NoError(t, err)
	_, err = e.Shrink("3", OrderRanked, -1)
	assert.ErrorContains(t, err, "rank must not be negative")
	_, err = e.Shrink("3", Order("sideways"), 0)
	assert.ErrorContains(t, err, "unknown shrink order")
}

func TestShrinkCollections(t *testing.T) {
	for _, c := range shrinkAll(t, "sorted-ints", "[1, 5, 9]", OrderDefault, 0) {
		assert.True(t, strings.HasPrefix(c, "[") && strings.HasSuffix(c, "]"), c)
	}
	assert.NotEmpty(t, shrinkAll(t, "nonempty-ints", "4 7", OrderDefault, 0))
	assert.Equal(t, []string{"a", "b"}, shrinkAll(t, "latin1-char", "c", OrderDefault, 0))
	assert.Empty(t, shrinkAll(t, "ascii-char", "c", OrderDefault, 0))
}

func TestEntryWithoutParser(t *testing.T) {
	e := Entry{Name: "bare"}
	assert.False(t, e.CanShrink())
	_, err := e.Shrink("1", OrderDefault, 0)
	assert.ErrorContains(t, err, "does not support shrinking")
}

func TestSampleNDeterministicAcrossWorkers(t *testing.T) {
	e, err := New().Lookup("wide-int64")
	require.NoError(t, err)

	opts := SampleOptions{Count: 64, Size: 30, Seed: 1234, Workers: 1}
	serial, err := e.SampleN(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, serial, 64)

	opts.Workers = 8
	parallel, err := e.SampleN(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestSampleNFilter(t *testing.T) {
	e, err := New().Lookup("narrow-int")
	require.NoError(t, err)

	match, err := filter.Compile("Gt(3) && Even()")
	require.NoError(t, err)

	values, err := e.SampleN(context.Background(), SampleOptions{Count: 40, Size: 50, Seed: 9, Workers: 4, Match: match})
	require.NoError(t, err)
	for _, v := range values {
		require.True(t, v.Numeric)
		assert.Greater(t, v.Number, 3.0)
		assert.Zero(t, int(v.Number)%2)
	}
}

func TestSampleNFilterKeepsSize(t *testing.T) {
	e, err := New().Lookup("narrow-int")
	require.NoError(t, err)

	match, err := filter.Compile("Gt(2)")
	require.NoError(t, err)

	values, err := e.SampleN(context.Background(), SampleOptions{Count: 30, Size: 5, Seed: 3, Workers: 3, Match: match})
	require.NoError(t, err)
	for _, v := range values {
		assert.Greater(t, v.Int, int64(2))
		assert.LessOrEqual(t, v.Int, int64(5))
	}
}

func TestSampleNUnsatisfiableFilterStopsWithContext(t *testing.T) {
	e, err := New().Lookup("narrow-int")
	require.NoError(t, err)

	match, err := filter.Compile("Gt(10)")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = e.SampleN(ctx, SampleOptions{Count: 2, Size: 5, Seed: 1, Workers: 2, Match: match})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSampleNWideInt64Parity(t *testing.T) {
	e, err := New().Lookup("wide-int64")
	require.NoError(t, err)

	match, err := filter.Compile("Odd()")
	require.NoError(t, err)

	values, err := e.SampleN(context.Background(), SampleOptions{Count: 50, Size: 10, Seed: 21, Workers: 4, Match: match})
	require.NoError(t, err)
	for _, v := range values {
		n, err := strconv.ParseInt(v.Text, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, n, v.Int)
		assert.NotZero(t, n%2, "%d is not odd", n)
	}
}

func TestSampleNText(t *testing.T) {
	e, err := New().Lookup("ascii-string")
	require.NoError(t, err)

	values, err := e.SampleN(context.Background(), SampleOptions{Count: 20, Size: 10, Seed: 5, Workers: 2})
	require.NoError(t, err)
	for _, v := range values {
		assert.False(t, v.Numeric)
		assert.LessOrEqual(t, len([]rune(v.Text)), 10)
	}
}

func TestSampleNErrors(t *testing.T) {
	e, err := New().Lookup("narrow-int")
	require.NoError(t, err)

	_, err = e.SampleN(context.Background(), SampleOptions{Count: -1, Workers: 1})
	assert.ErrorContains(t, err, "count must not be negative")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.SampleN(ctx, SampleOptions{Count: 5, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)

	empty, err := e.SampleN(context.Background(), SampleOptions{Count: 0, Workers: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
