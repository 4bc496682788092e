package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/phylo"
)

func TestTabularDecoder_Decode(t *testing.T) {
	decoder, err := NewTabularDecoder()
	require.NoError(t, err)

	input := "Language_ID,Feature_ID,Value\n" +
		"A,f1,0\n" +
		"A,f2,1\n" +
		"B,f1,1\n" +
		"B,f2,?\n"

	m, err := decoder.Decode(input)
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, m.Taxa())
	require.Equal(t, []string{"f1", "f2"}, m.Characters())

	// Discovery order: A's "0" arrives before B's "1".
	require.Equal(t, []string{"0", "1"}, m.StatesOf("f1").States())
	require.Equal(t, []string{"1"}, m.StatesOf("f2").States())

	require.Equal(t, []string{"0"}, m.ObservationsOf("A", "f1"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("A", "f2"))
	require.Equal(t, []string{"1"}, m.ObservationsOf("B", "f1"))
	require.Empty(t, m.ObservationsOf("B", "f2"))
}

func TestTabularDecoder_PolymorphismAccumulates(t *testing.T) {
	decoder, err := NewTabularDecoder()
	require.NoError(t, err)

	input := "Language_ID,Feature_ID,Value\n" +
		"A,f1,red\n" +
		"A,f1,blue\n" +
		"A,f1,red\n"

	m, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Equal(t, []string{"blue", "red"}, m.ObservationsOf("A", "f1"))
	require.Equal(t, []string{"red", "blue"}, m.StatesOf("f1").States())
}

func TestTabularDecoder_InfersColumns(t *testing.T) {
	decoder, err := NewTabularDecoder()
	require.NoError(t, err)

	input := "ID\tSpecies Name\tFeature\tObservation\n" +
		"1\tFinch\tcolor\tred\n" +
		"2\tHawk\tcolor\tblue\n"

	m, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Equal(t, []string{"Finch", "Hawk"}, m.Taxa())
	require.Equal(t, []string{"color"}, m.Characters())
	require.Equal(t, []string{"red"}, m.ObservationsOf("Finch", "color"))
}

func TestTabularDecoder_ExplicitColumns(t *testing.T) {
	decoder, err := NewTabularDecoder(WithInputColumns("Witness", "Reading", "Lesson"))
	require.NoError(t, err)

	input := "Witness,Reading,Lesson\n" +
		"W1,12,a\n" +
		"W2,12,b\n"

	m, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Equal(t, []string{"W1", "W2"}, m.Taxa())
	require.Equal(t, []string{"a"}, m.ObservationsOf("W1", "12"))
	require.Equal(t, []string{"b"}, m.ObservationsOf("W2", "12"))
}

func TestTabularDecoder_ForcedDelimiter(t *testing.T) {
	// A comma inside the single tab-separated value column must not be
	// treated as a field separator.
	decoder, err := NewTabularDecoder(WithInputDelimiter('\t'))
	require.NoError(t, err)

	input := "Language_ID\tFeature_ID\tValue\n" +
		"A\tf1\tx,y\n"

	m, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Equal(t, []string{"x,y"}, m.ObservationsOf("A", "f1"))
}

func TestTabularDecoder_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		decoder, err := NewTabularDecoder()
		require.NoError(t, err)

		_, err = decoder.Decode("   \n  ")
		require.ErrorIs(t, err, errs.ErrEmptyInput)
	})

	t.Run("duplicate header column", func(t *testing.T) {
		decoder, err := NewTabularDecoder()
		require.NoError(t, err)

		_, err = decoder.Decode("Language_ID,Value,Value\nA,f1,0\n")
		require.ErrorIs(t, err, errs.ErrDuplicateColumn)
	})

	t.Run("explicit column absent", func(t *testing.T) {
		decoder, err := NewTabularDecoder(WithInputColumns("Manuscript", "", ""))
		require.NoError(t, err)

		_, err = decoder.Decode("Language_ID,Feature_ID,Value\nA,f1,0\n")
		require.ErrorIs(t, err, errs.ErrMissingColumn)
	})

	t.Run("explicit columns collide", func(t *testing.T) {
		decoder, err := NewTabularDecoder(WithInputColumns("Col", "Col", "Value"))
		require.NoError(t, err)

		_, err = decoder.Decode("Col,Value,Extra\nA,f1,0\n")
		require.ErrorIs(t, err, errs.ErrDuplicateColumn)
	})

	t.Run("no inferable column", func(t *testing.T) {
		decoder, err := NewTabularDecoder()
		require.NoError(t, err)

		_, err = decoder.Decode("x,y,z\n1,2,3\n")
		require.ErrorIs(t, err, errs.ErrMissingColumn)
	})

	t.Run("ragged row", func(t *testing.T) {
		decoder, err := NewTabularDecoder()
		require.NoError(t, err)

		_, err = decoder.Decode("Language_ID,Feature_ID,Value\nA,f1\n")
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("invalid delimiter option", func(t *testing.T) {
		_, err := NewTabularDecoder(WithInputDelimiter(';'))
		require.Error(t, err)
	})
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   rune
	}{
		{name: "comma header", source: "a,b,c\n1,2,3\n", want: ','},
		{name: "tab header", source: "a\tb\tc\n1\t2\t3\n", want: '\t'},
		{name: "mixed prefers majority", source: "a\tb,c\td\n", want: '\t'},
		{name: "tie prefers comma", source: "a,b\tc\n", want: ','},
		{name: "no delimiter", source: "header\n", want: ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectDelimiter(tt.source))
		})
	}
}

func TestTabularEncoder_Encode(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("Hawk", "color", "blue")
	builder.AddValue("Finch", "color", "red")
	builder.AddValue("Finch", "size", "big")
	m := builder.Build()

	encoder, err := NewTabularEncoder()
	require.NoError(t, err)

	got, err := encoder.Encode(m)
	require.NoError(t, err)

	want := "Taxon,Character,Value\n" +
		"Finch,color,red\n" +
		"Hawk,color,blue\n" +
		"Finch,size,big\n"
	require.Equal(t, want, got)
}

func TestTabularEncoder_QuotesDelimiterInValue(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("A", "f1", "x,y")
	m := builder.Build()

	encoder, err := NewTabularEncoder()
	require.NoError(t, err)

	got, err := encoder.Encode(m)
	require.NoError(t, err)
	require.Equal(t, "Taxon,Character,Value\nA,f1,\"x,y\"\n", got)
}

func TestTabularEncoder_CustomDelimiterAndColumns(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("A", "f1", "0")
	m := builder.Build()

	encoder, err := NewTabularEncoder(
		WithOutputDelimiter('\t'),
		WithOutputColumns("Language_ID", "Feature_ID", "Value"),
	)
	require.NoError(t, err)

	got, err := encoder.Encode(m)
	require.NoError(t, err)
	require.Equal(t, "Language_ID\tFeature_ID\tValue\nA\tf1\t0\n", got)
}

func TestTabularEncoder_EmptyMatrix(t *testing.T) {
	encoder, err := NewTabularEncoder()
	require.NoError(t, err)

	got, err := encoder.Encode(phylo.NewBuilder().Build())
	require.NoError(t, err)
	require.Equal(t, "Taxon,Character,Value\n", got)
}

func TestTabularEncoder_InvalidOptions(t *testing.T) {
	_, err := NewTabularEncoder(WithOutputDelimiter(';'))
	require.Error(t, err)

	_, err = NewTabularEncoder(WithOutputColumns("", "Character", "Value"))
	require.Error(t, err)
}

func TestTabularRoundTrip(t *testing.T) {
	builder := phylo.NewBuilder()
	builder.AddValue("Finch", "color", "red")
	builder.AddValue("Finch", "size", "big")
	builder.AddValue("Hawk", "color", "blue")
	builder.AddValue("Hawk", "color", "grey")
	builder.AddValue("Hawk", "size", "small")
	m := builder.Build()

	encoder, err := NewTabularEncoder()
	require.NoError(t, err)
	decoder, err := NewTabularDecoder()
	require.NoError(t, err)

	text, err := encoder.Encode(m)
	require.NoError(t, err)

	parsed, err := decoder.Decode(text)
	require.NoError(t, err)

	require.Equal(t, m.Triples(), parsed.Triples())
	require.Equal(t, m.Taxa(), parsed.Taxa())
	require.Equal(t, m.Characters(), parsed.Characters())
}
