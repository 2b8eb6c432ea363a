package shrink

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting yields 0, 1, 2, ... up to n-1 and records how many were pulled.
func counting(n int, pulled *int) Seq[int] {
	return func() (int, bool) {
		if *pulled >= n {
			return 0, false
		}
		v := *pulled
		*pulled++
		return v, true
	}
}

func TestOfAndAll(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Of(1, 2, 3).All())
	assert.Equal(t, []int{}, Of[int]().All())
	assert.Equal(t, []string{}, Empty[string]().All())
}

func TestTake(t *testing.T) {
	var pulled int
	s := counting(100, &pulled)

	assert.Equal(t, []int{0, 1, 2}, s.Take(3))
	assert.Equal(t, 3, pulled, "Take must not read ahead")
	assert.Equal(t, []int{}, s.Take(0))
	assert.Equal(t, []int{3, 4}, s.Take(2))
}

func TestSplitAt(t *testing.T) {
	front, rest := Of(1, 2, 3, 4, 5).SplitAt(2)
	assert.Equal(t, []int{1, 2}, front)
	assert.Equal(t, []int{3, 4, 5}, rest.All())

	front, rest = Of(1).SplitAt(3)
	assert.Equal(t, []int{1}, front)
	assert.Empty(t, rest.All())
}

func TestFilter(t *testing.T) {
	even := Of(1, 2, 3, 4, 5, 6).Filter(func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, even.All())
}

func TestMap(t *testing.T) {
	doubled := Map(Of(1, 2, 3), func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled.All())
}

func TestConcat(t *testing.T) {
	s := Concat(Of(1, 2), nil, Empty[int](), Of(3))
	assert.Equal(t, []int{1, 2, 3}, s.All())
	assert.Empty(t, Concat[int]().All())
}

func TestConcatIsLazy(t *testing.T) {
	var pulled int
	s := Concat(Of(-1), counting(10, &pulled))

	assert.Equal(t, []int{-1}, s.Take(1))
	assert.Zero(t, pulled)
}

func TestFlatMap(t *testing.T) {
	s := FlatMap(Of(1, 2, 3), func(v int) Seq[int] {
		if v == 2 {
			return nil
		}
		return Of(v*10, v*10+1)
	})
	assert.Equal(t, []int{10, 11, 30, 31}, s.All())
}

func TestInterleave(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want []int
	}{
		{"equal length", []int{1, 3, 5}, []int{2, 4, 6}, []int{1, 2, 3, 4, 5, 6}},
		{"longer first", []int{1, 3, 5, 7, 8}, []int{2, 4}, []int{1, 2, 3, 4, 5, 7, 8}},
		{"longer second", []int{1}, []int{2, 3, 4}, []int{1, 2, 3, 4}},
		{"empty first", nil, []int{1, 2}, []int{1, 2}},
		{"both empty", nil, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interleave(Of(tt.a...), Of(tt.b...)).All()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumerate(t *testing.T) {
	got := Enumerate(Of("a", "b")).All()
	assert.Equal(t, []Indexed[string]{{Index: 0, Value: "a"}, {Index: 1, Value: "b"}}, got)
}

func TestLazy(t *testing.T) {
	built := false
	s := Lazy(func() Seq[int] {
		built = true
		return Of(7)
	})
	assert.False(t, built)
	assert.Equal(t, []int{7}, s.All())
	assert.True(t, built)

	assert.Empty(t, Lazy(func() Seq[int] { return nil }).All())
}

func TestGopterRoundTrip(t *testing.T) {
	untyped := Of(1, 2, 3).Gopter()
	v, ok := untyped()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	typed := FromGopter[int](untyped)
	assert.Equal(t, []int{2, 3}, typed.All())

	var none Seq[int]
	_, ok = none.Gopter()()
	assert.False(t, ok)
	assert.Empty(t, FromGopter[int](nil).All())
}

func TestFromGopterSkipsForeignTypes(t *testing.T) {
	var s gopter.Shrink = Of[interface{}](1, "two", 3).Gopter()
	assert.Equal(t, []int{1, 3}, FromGopter[int](s).All())
}

func TestFromGopterShrinker(t *testing.T) {
	got := FromGopter[int64](gen.Int64Shrinker(int64(10))).All()
	assert.Equal(t, []int64{0, 5, -5, 8, -8, 9, -9}, got)
}
