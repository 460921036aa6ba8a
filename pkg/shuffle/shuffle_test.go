package shuffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice_Deterministic(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	b := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	Slice(a, 42)
	Slice(b, 42)

	assert.Equal(t, a, b, "same seed must produce the same permutation")
}

func TestSlice_SeedChangesOrder(t *testing.T) {
	a := make([]int, 64)
	b := make([]int, 64)
	for i := range a {
		a[i] = i
		b[i] = i
	}

	Slice(a, 1)
	Slice(b, 2)

	assert.NotEqual(t, a, b, "different seeds should disagree on 64 elements")
}

func TestSlice_IsPermutation(t *testing.T) {
	s := make([]int, 100)
	for i := range s {
		s[i] = i
	}

	Slice(s, 987654321)

	seen := make(map[int]bool, len(s))
	for _, v := range s {
		require.False(t, seen[v], "element %d appeared twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, 100)
}

func TestSlice_NegativeSeed(t *testing.T) {
	a := []string{"x", "y", "z", "w"}
	b := []string{"x", "y", "z", "w"}

	Slice(a, -7)
	Slice(b, -7)

	assert.Equal(t, a, b)
}

func TestSlice_SmallInputs(t *testing.T) {
	var empty []string
	Slice(empty, 5)
	assert.Empty(t, empty)

	one := []string{"only"}
	Slice(one, 5)
	assert.Equal(t, []string{"only"}, one)
}
