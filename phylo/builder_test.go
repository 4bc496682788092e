package phylo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_AddValue(t *testing.T) {
	b := NewBuilder()
	b.AddValue("Latin", "ash", "cinis")
	b.AddValue("Latin", "ash", "cineris")
	b.AddValue("Latin", "ash", "cinis") // duplicate collapses
	b.AddValue("Greek", "ash", "tephra")

	m := b.Build()

	require.Equal(t, []string{"Greek", "Latin"}, m.Taxa())
	require.Equal(t, []string{"ash"}, m.Characters())
	require.Equal(t, []string{"cineris", "cinis"}, m.ObservationsOf("Latin", "ash"))
	require.Equal(t, []string{"tephra"}, m.ObservationsOf("Greek", "ash"))

	// Alphabet keeps first-seen order across taxa.
	require.Equal(t, []string{"cinis", "cineris", "tephra"}, m.StatesOf("ash").States())
}

func TestBuilder_MissingSentinel(t *testing.T) {
	b := NewBuilder()
	b.AddValue("A", "f1", "0")
	b.AddValue("B", "f1", Missing)
	b.AddValue("C", "f2", Missing)

	m := b.Build()

	// The taxon is registered in every case.
	require.Equal(t, []string{"A", "B", "C"}, m.Taxa())

	// The sentinel reaches neither alphabets nor cells.
	require.Equal(t, []string{"f1"}, m.Characters())
	require.False(t, m.StatesOf("f1").Has(Missing))
	require.Empty(t, m.ObservationsOf("B", "f1"))
	require.Empty(t, m.ObservationsOf("C", "f2"))
	require.Nil(t, m.StatesOf("f2"))
}

func TestBuilder_AddTaxon(t *testing.T) {
	b := NewBuilder()
	b.AddTaxon("Isolate")
	b.AddTaxon("Isolate")
	b.AddValue("Latin", "ash", "cinis")

	m := b.Build()

	require.Equal(t, []string{"Isolate", "Latin"}, m.Taxa())
	require.Equal(t, 1, m.CharacterCount())
	require.Empty(t, m.ObservationsOf("Isolate", "ash"))
}

func TestBuilder_AddCharset(t *testing.T) {
	b := NewBuilder()
	b.AddValue("A", "c1", "x")
	b.AddCharset("grp", "c2", "c1")
	b.AddCharset("grp", "c1") // extend with a duplicate

	m := b.Build()

	require.Equal(t, map[string][]string{"grp": {"c1", "c2"}}, m.Charsets())
}

func TestBuilder_BuildSnapshots(t *testing.T) {
	b := NewBuilder()
	b.AddValue("A", "f1", "0")

	first := b.Build()
	b.AddValue("B", "f1", "1")
	second := b.Build()

	require.Equal(t, 1, first.TaxonCount())
	require.Equal(t, 2, second.TaxonCount())
	require.Empty(t, first.ObservationsOf("B", "f1"))
	require.Equal(t, []string{"1"}, second.ObservationsOf("B", "f1"))
}

// TestBuilder_ScenarioModel walks the documented ingestion example: two taxa,
// two characters, one missing cell.
func TestBuilder_ScenarioModel(t *testing.T) {
	b := NewBuilder()
	b.AddValue("A", "f1", "0")
	b.AddValue("A", "f2", "1")
	b.AddValue("B", "f1", "1")
	b.AddValue("B", "f2", Missing)

	m := b.Build()

	require.Equal(t, []string{"A", "B"}, m.Taxa())
	require.Equal(t, []string{"f1", "f2"}, m.Characters())
	require.Equal(t, []string{"0", "1"}, m.StatesOf("f1").States())
	require.Equal(t, []string{"1"}, m.StatesOf("f2").States())
	require.Equal(t, []string{"0"}, m.ObservationsOf("A", "f1"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("A", "f2"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("B", "f1"))
	require.Empty(t, m.ObservationsOf("B", "f2"))
	require.NoError(t, m.Validate())
}
