// Package phylio converts phylogenetic character data between tabular,
// NEXUS and PHYLIP representations.
//
// The package reads delimiter-separated observation triples, NEXUS documents
// and relaxed PHYLIP alignments into a shared matrix model, and renders that
// model back into any of the three families. The matrix keeps the full
// detail the formats cannot always carry themselves: per-character state
// alphabets in discovery order, polymorphic cells, missing observations and
// character sets.
//
// # Core Features
//
//   - A single matrix model shared by every codec, built once per conversion
//   - Discovery-order state alphabets driving NEXUS and PHYLIP rank glyphs
//   - Polymorphic cells, rendered as the first state or as multistate groups
//   - Character binarization with optional ascertainment correction
//   - Label slugging for format-hostile taxon and character names
//
// # Basic Usage
//
// Converting tabular triples to NEXUS:
//
//	import (
//	    "github.com/phylio/phylio"
//	    "github.com/phylio/phylio/format"
//	)
//
//	text := "Language_ID,Feature_ID,Value\nA,f1,0\nA,f2,1\nB,f1,1\n"
//
//	m, _ := phylio.Parse(text, format.TypeAuto)
//	doc, _ := phylio.RenderNexus(m)
//	fmt.Println(doc)
//
// One-shot conversion when the matrix itself is not needed:
//
//	doc, err := phylio.Convert(text, format.TypeTabular, format.TypeNexus)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec
// package, simplifying the most common use cases. For fine-grained control
// over delimiters, column names and polymorphism rendering, use the codec
// package directly.
package phylio

import (
	"fmt"

	"github.com/phylio/phylio/codec"
	"github.com/phylio/phylio/format"
	"github.com/phylio/phylio/phylo"
)

// Parse decodes source text in the given format into a matrix.
//
// format.TypeAuto detects the format from the content: a #NEXUS marker, a
// PHYLIP header line, and tabular text as the fallback. TypeCSV and TypeTSV
// force the tabular delimiter while TypeTabular detects it from the header
// row.
//
// Parameters:
//   - text: The source document, already decoded to UTF-8 text
//   - t: The input format tag
//
// Returns:
//   - *phylo.Matrix: The decoded matrix
//   - error: A sentinel from the errs package describing the parse failure
//
// Example:
//
//	m, err := phylio.Parse(text, format.TypeAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(text string, t format.Type) (*phylo.Matrix, error) {
	if t == format.TypeAuto {
		t = format.Detect(text)
	}

	switch t {
	case format.TypeTabular:
		return ParseTabular(text)
	case format.TypeCSV:
		return ParseTabular(text, codec.WithInputDelimiter(','))
	case format.TypeTSV:
		return ParseTabular(text, codec.WithInputDelimiter('\t'))
	case format.TypeNexus:
		return ParseNexus(text)
	case format.TypePhylip:
		return ParsePhylip(text)
	default:
		return nil, fmt.Errorf("invalid input format: %s", t)
	}
}

// ParseTabular decodes delimiter-separated triple text into a matrix.
//
// Without options the delimiter is detected from the header row and the
// three logical columns resolve from default names and inference. See
// codec.WithInputDelimiter and codec.WithInputColumns.
func ParseTabular(text string, opts ...codec.TabularDecoderOption) (*phylo.Matrix, error) {
	decoder, err := codec.NewTabularDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(text)
}

// ParseNexus decodes a NEXUS document into a matrix.
func ParseNexus(text string) (*phylo.Matrix, error) {
	return codec.NewNexusDecoder().Decode(text)
}

// ParsePhylip decodes a relaxed sequential PHYLIP alignment into a matrix.
func ParsePhylip(text string) (*phylo.Matrix, error) {
	return codec.NewPhylipDecoder().Decode(text)
}

// Render encodes a matrix into the given format with default settings.
//
// TypeTabular and TypeCSV render comma-separated triples, TypeTSV
// tab-separated ones. TypeAuto is not a renderable format.
//
// Parameters:
//   - m: The matrix to render
//   - t: The output format tag
//
// Returns:
//   - string: The rendered document
//   - error: A sentinel from the errs package describing the render failure
//
// Example:
//
//	doc, err := phylio.Render(m, format.TypeNexus)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Render(m *phylo.Matrix, t format.Type) (string, error) {
	switch t {
	case format.TypeTabular, format.TypeCSV:
		return RenderTabular(m)
	case format.TypeTSV:
		return RenderTabular(m, codec.WithOutputDelimiter('\t'))
	case format.TypeNexus:
		return RenderNexus(m)
	case format.TypePhylip:
		return RenderPhylip(m)
	default:
		return "", fmt.Errorf("invalid output format: %s", t)
	}
}

// RenderTabular encodes a matrix as delimiter-separated triples. See
// codec.WithOutputDelimiter and codec.WithOutputColumns for the knobs.
func RenderTabular(m *phylo.Matrix, opts ...codec.TabularEncoderOption) (string, error) {
	encoder, err := codec.NewTabularEncoder(opts...)
	if err != nil {
		return "", err
	}

	return encoder.Encode(m)
}

// RenderNexus encodes a matrix as a NEXUS document. See
// codec.WithNexusPolymorphism and codec.WithNexusAssumptions for the knobs.
func RenderNexus(m *phylo.Matrix, opts ...codec.NexusEncoderOption) (string, error) {
	encoder, err := codec.NewNexusEncoder(opts...)
	if err != nil {
		return "", err
	}

	return encoder.Encode(m)
}

// RenderPhylip encodes a matrix as a relaxed sequential PHYLIP alignment.
// See codec.WithPhylipPolymorphism for the polymorphism knob.
func RenderPhylip(m *phylo.Matrix, opts ...codec.PhylipEncoderOption) (string, error) {
	encoder, err := codec.NewPhylipEncoder(opts...)
	if err != nil {
		return "", err
	}

	return encoder.Encode(m)
}

// Convert parses text in one format and renders it in another with default
// settings for both sides.
//
// Parameters:
//   - text: The source document
//   - in: The input format tag, format.TypeAuto to detect
//   - out: The output format tag
//
// Returns:
//   - string: The converted document
//   - error: The parse or render failure, unchanged
//
// Example:
//
//	doc, err := phylio.Convert(csvText, format.TypeAuto, format.TypeNexus)
func Convert(text string, in, out format.Type) (string, error) {
	m, err := Parse(text, in)
	if err != nil {
		return "", err
	}

	return Render(m, out)
}
