package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/phylo"
)

func TestPhylipEncoder_Encode(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("Finch", "c1", "red")
	builder.AddValue("Finch", "c2", "0")
	builder.AddValue("Hawk", "c1", "blue")
	m := builder.Build()

	encoder, err := NewPhylipEncoder()
	require.NoError(t, err)

	got, err := encoder.Encode(m)
	require.NoError(t, err)
	require.Equal(t, "2 2\nFinch    00\nHawk     1?\n", got)
}

func TestPhylipEncoder_Multistate(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("t1", "c1", "x")
	builder.AddValue("t1", "c1", "y")
	m := builder.Build()

	encoder, err := NewPhylipEncoder(WithPhylipPolymorphism(PolymorphismMultistate))
	require.NoError(t, err)

	got, err := encoder.Encode(m)
	require.NoError(t, err)
	require.Equal(t, "1 1\nt1    (0,1)\n", got)
}

func TestPhylipEncoder_EmptyMatrix(t *testing.T) {
	encoder, err := NewPhylipEncoder()
	require.NoError(t, err)

	_, err = encoder.Encode(phylo.NewBuilder().Build())
	require.ErrorIs(t, err, errs.ErrEmptyMatrix)
}

func TestPhylipDecoder_Decode(t *testing.T) {
	m, err := NewPhylipDecoder().Decode("2 2\nFinch    00\nHawk     1?\n")
	require.NoError(t, err)

	require.Equal(t, []string{"Finch", "Hawk"}, m.Taxa())
	require.Equal(t, []string{"CHAR_0", "CHAR_1"}, m.Characters())
	require.Equal(t, []string{"0"}, m.ObservationsOf("Finch", "CHAR_0"))
	require.Equal(t, []string{"0"}, m.ObservationsOf("Finch", "CHAR_1"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("Hawk", "CHAR_0"))
	require.Empty(t, m.ObservationsOf("Hawk", "CHAR_1"))
}

func TestPhylipDecoder_SpacedVectors(t *testing.T) {
	m, err := NewPhylipDecoder().Decode("2 3\ntaxA 0 1 0\ntaxB 01 1\n")
	require.NoError(t, err)

	require.Equal(t, []string{"0"}, m.ObservationsOf("taxA", "CHAR_0"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("taxA", "CHAR_1"))
	require.Equal(t, []string{"0"}, m.ObservationsOf("taxA", "CHAR_2"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("taxB", "CHAR_2"))
}

func TestPhylipDecoder_GapAndMissing(t *testing.T) {
	m, err := NewPhylipDecoder().Decode("2 2\na 0-\nb ?1\n")
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, m.Taxa())
	require.Equal(t, []string{"CHAR_0", "CHAR_1"}, m.Characters())
	require.Equal(t, []string{"0"}, m.ObservationsOf("a", "CHAR_0"))
	require.Empty(t, m.ObservationsOf("a", "CHAR_1"))
	require.Empty(t, m.ObservationsOf("b", "CHAR_0"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("b", "CHAR_1"))
}

func TestPhylipDecoder_PolymorphicGroups(t *testing.T) {
	m, err := NewPhylipDecoder().Decode("1 2\nt (0,1)1\n")
	require.NoError(t, err)

	require.Equal(t, []string{"0", "1"}, m.ObservationsOf("t", "CHAR_0"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("t", "CHAR_1"))
}

func TestPhylipDecoder_LowercasesVector(t *testing.T) {
	m, err := NewPhylipDecoder().Decode("1 4\nseq acgt\n")
	require.NoError(t, err)

	require.Equal(t, []string{"A"}, m.ObservationsOf("seq", "CHAR_0"))
	require.Equal(t, []string{"T"}, m.ObservationsOf("seq", "CHAR_3"))
	require.True(t, m.IsGenetic())
}

func TestPhylipDecoder_Errors(t *testing.T) {
	decoder := NewPhylipDecoder()

	tests := []struct {
		name   string
		source string
		want   error
	}{
		{name: "empty input", source: " \n", want: errs.ErrEmptyInput},
		{name: "missing header", source: "hello world\nfoo bar\n", want: errs.ErrBadMagic},
		{name: "taxon count mismatch", source: "3 2\na 00\nb 11\n", want: errs.ErrTaxonCountMismatch},
		{name: "vector length mismatch", source: "1 3\na 00\n", want: errs.ErrVectorLengthMismatch},
		{name: "duplicate taxon", source: "2 2\na 00\na 11\n", want: errs.ErrMalformedInput},
		{name: "row without vector", source: "1 2\na\n", want: errs.ErrMalformedInput},
		{name: "unbalanced group", source: "1 2\na (01\n", want: errs.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.Decode(tt.source)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPhylipRoundTrip(t *testing.T) {
	t.Run("glyph aligned", func(t *testing.T) {
		// States equal their own glyphs in discovery order, so the
		// label-less format can recover them exactly.
		builder := phylo.NewBuilder()
		builder.AddValue("alpha", "CHAR_0", "0")
		builder.AddValue("alpha", "CHAR_1", "0")
		builder.AddValue("beta", "CHAR_0", "1")
		builder.AddValue("beta", "CHAR_1", "1")
		m := builder.Build()

		encoder, err := NewPhylipEncoder()
		require.NoError(t, err)

		text, err := encoder.Encode(m)
		require.NoError(t, err)

		parsed, err := NewPhylipDecoder().Decode(text)
		require.NoError(t, err)
		require.Equal(t, m.Triples(), parsed.Triples())
		require.Equal(t, m.Taxa(), parsed.Taxa())
	})

	t.Run("genetic", func(t *testing.T) {
		// Bases encode as themselves, so fidelity holds whatever the
		// discovery order was.
		builder := phylo.NewBuilder()
		builder.AddValue("s1", "CHAR_0", "T")
		builder.AddValue("s1", "CHAR_1", "A")
		builder.AddValue("s2", "CHAR_0", "C")
		builder.AddValue("s2", "CHAR_1", "G")
		m := builder.Build()

		encoder, err := NewPhylipEncoder()
		require.NoError(t, err)

		text, err := encoder.Encode(m)
		require.NoError(t, err)
		require.Equal(t, "2 2\ns1    TA\ns2    CG\n", text)

		parsed, err := NewPhylipDecoder().Decode(text)
		require.NoError(t, err)
		require.Equal(t, m.Triples(), parsed.Triples())
	})
}
