package codec

import (
	"fmt"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/internal/options"
	"github.com/phylio/phylio/internal/pool"
	"github.com/phylio/phylio/phylo"
)

// PhylipEncoder renders a matrix as a relaxed sequential PHYLIP alignment:
// a header line with the taxon and character counts, then one row per taxon
// with the label padded to the longest label plus four spaces followed by
// the state vector. Vectors use the same rank-glyph substitution as the
// NEXUS MATRIX command.
//
// Note: PhylipEncoder instances are stateless and safe for concurrent use.
type PhylipEncoder struct {
	*PhylipEncoderConfig
}

// NewPhylipEncoder creates a PhylipEncoder with the given options.
//
// Returns:
//   - *PhylipEncoder: New encoder instance
//   - error: Configuration error if invalid options provided
func NewPhylipEncoder(opts ...PhylipEncoderOption) (*PhylipEncoder, error) {
	config := NewPhylipEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &PhylipEncoder{PhylipEncoderConfig: config}, nil
}

// Encode renders m as PHYLIP text.
//
// Returns:
//   - string: The rendered alignment
//   - error: errs.ErrEmptyMatrix for a matrix without taxa, or
//     errs.ErrAlphabetTooLarge when a character has more states than
//     SymbolTable holds glyphs
func (e *PhylipEncoder) Encode(m *phylo.Matrix) (string, error) {
	if m.TaxonCount() == 0 {
		return "", errs.ErrEmptyMatrix
	}
	if err := checkAlphabets(m); err != nil {
		return "", err
	}

	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	characters := m.Characters()
	genetic := m.IsGenetic()

	fmt.Fprintf(buf, "%d %d\n", m.TaxonCount(), m.CharacterCount())
	width := m.MaxTaxonLabelWidth()
	for _, taxon := range m.Taxa() {
		vector, err := renderVector(m, taxon, characters, e.polymorphism, genetic)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(buf, "%-*s    %s\n", width, taxon, vector)
	}

	return buf.String(), nil
}
