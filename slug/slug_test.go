package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		level    Level
		expected string
	}{
		{name: "none is identity", label: "São Tomé #3", level: LevelNone, expected: "São Tomé #3"},
		{name: "simple strips accents", label: "São Tomé", level: LevelSimple, expected: "SaoTome"},
		{name: "simple keeps digits and dashes", label: "Proto-Tupi_2", level: LevelSimple, expected: "Proto-Tupi_2"},
		{name: "simple drops punctuation and spaces", label: "a b.c!d", level: LevelSimple, expected: "abcd"},
		{name: "full lowercases", label: "São Tomé", level: LevelFull, expected: "saotome"},
		{name: "full drops digits", label: "Proto-Tupi_2", level: LevelFull, expected: "prototupi"},
		{name: "empty label", label: "", level: LevelFull, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Slug(tt.label, tt.level))
		})
	}
}

func TestUniqueIDs(t *testing.T) {
	t.Run("unique labels pass through", func(t *testing.T) {
		out := UniqueIDs([]string{"Latin", "Greek"}, LevelNone)
		require.Equal(t, []string{"Latin", "Greek"}, out)
	})

	t.Run("collisions get ordinal suffixes", func(t *testing.T) {
		out := UniqueIDs([]string{"x", "x", "y", "x"}, LevelNone)
		require.Equal(t, []string{"x-a", "x-b", "y", "x-c"}, out)
	})

	t.Run("slugging can introduce collisions", func(t *testing.T) {
		out := UniqueIDs([]string{"São", "Sao"}, LevelSimple)
		require.Equal(t, []string{"Sao-a", "Sao-b"}, out)
	})

	t.Run("order is preserved", func(t *testing.T) {
		out := UniqueIDs([]string{"b", "a", "b"}, LevelNone)
		require.Equal(t, []string{"b-a", "a", "b-b"}, out)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, UniqueIDs(nil, LevelFull))
	})
}

func TestSuffixLabel(t *testing.T) {
	require.Equal(t, "-a", suffixLabel(0))
	require.Equal(t, "-b", suffixLabel(1))
	require.Equal(t, "-z", suffixLabel(25))
	require.Equal(t, "-aa", suffixLabel(26))
	require.Equal(t, "-ab", suffixLabel(27))
	require.Equal(t, "-az", suffixLabel(51))
	require.Equal(t, "-ba", suffixLabel(52))
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "none", LevelNone.String())
	require.Equal(t, "simple", LevelSimple.String())
	require.Equal(t, "full", LevelFull.String())
	require.Equal(t, "unknown", Level(0x9).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Level
		expectErr bool
	}{
		{name: "none", input: "none", expected: LevelNone},
		{name: "empty defaults to none", input: "", expected: LevelNone},
		{name: "simple", input: "Simple", expected: LevelSimple},
		{name: "full", input: "FULL", expected: LevelFull},
		{name: "garbage", input: "extreme", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, level)
		})
	}
}
