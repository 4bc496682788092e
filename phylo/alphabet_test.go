package phylo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphabet_DiscoveryOrder(t *testing.T) {
	a := newAlphabet()
	a.add("med")
	a.add("low")
	a.add("high")
	a.add("low") // repeat keeps the original rank

	require.Equal(t, 3, a.Len())
	require.Equal(t, []string{"med", "low", "high"}, a.States())
	require.Equal(t, []string{"high", "low", "med"}, a.Sorted())

	rank, ok := a.Rank("med")
	require.True(t, ok)
	require.Equal(t, 0, rank)

	rank, ok = a.Rank("low")
	require.True(t, ok)
	require.Equal(t, 1, rank)

	_, ok = a.Rank("absent")
	require.False(t, ok)

	require.True(t, a.Has("high"))
	require.False(t, a.Has("absent"))
}

func TestAlphabet_AccessorsReturnCopies(t *testing.T) {
	a := newAlphabet()
	a.add("b")
	a.add("a")

	states := a.States()
	states[0] = "mutated"
	require.Equal(t, []string{"b", "a"}, a.States())

	sorted := a.Sorted()
	sorted[0] = "mutated"
	require.Equal(t, []string{"a", "b"}, a.Sorted())
}

func TestAlphabet_IsBinary(t *testing.T) {
	tests := []struct {
		name     string
		states   []string
		expected bool
	}{
		{name: "zero and one", states: []string{"0", "1"}, expected: true},
		{name: "only one", states: []string{"1"}, expected: true},
		{name: "only zero", states: []string{"0"}, expected: true},
		{name: "ternary", states: []string{"0", "1", "2"}, expected: false},
		{name: "letters", states: []string{"A"}, expected: false},
		{name: "empty", states: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAlphabet()
			for _, state := range tt.states {
				a.add(state)
			}
			require.Equal(t, tt.expected, a.IsBinary())
		})
	}
}

func TestAlphabet_IsGenetic(t *testing.T) {
	tests := []struct {
		name     string
		states   []string
		expected bool
	}{
		{name: "all four bases", states: []string{"A", "C", "G", "T"}, expected: true},
		{name: "subset of bases", states: []string{"A", "C"}, expected: true},
		{name: "lowercase is not genetic", states: []string{"a"}, expected: false},
		{name: "mixed with non-base", states: []string{"A", "X"}, expected: false},
		{name: "empty", states: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAlphabet()
			for _, state := range tt.states {
				a.add(state)
			}
			require.Equal(t, tt.expected, a.IsGenetic())
		})
	}
}

func TestAlphabet_Clone(t *testing.T) {
	a := newAlphabet()
	a.add("x")
	a.add("y")

	c := a.clone()
	a.add("z")

	require.Equal(t, 3, a.Len())
	require.Equal(t, 2, c.Len())
	require.Equal(t, []string{"x", "y"}, c.States())

	rank, ok := c.Rank("y")
	require.True(t, ok)
	require.Equal(t, 1, rank)
}
