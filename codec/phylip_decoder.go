package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/phylo"
)

var phylipHeaderRe = regexp.MustCompile(`(\d+)\s+(\d+)`)

// PhylipDecoder parses relaxed sequential PHYLIP alignments into matrices.
//
// The first line declares the taxon and character counts; every following
// nonempty line is a taxon label and its state vector, spacing inside the
// vector ignored and glyphs uppercased. The format carries no character
// names, so columns get synthetic CHAR_ names. Gap glyphs are skipped, the
// missing glyph registers the taxon only, and any other glyph becomes the
// state value itself.
//
// Note: PhylipDecoder instances are stateless and safe for concurrent use.
type PhylipDecoder struct{}

// NewPhylipDecoder creates a PhylipDecoder.
func NewPhylipDecoder() *PhylipDecoder {
	return &PhylipDecoder{}
}

// Decode parses source into a matrix.
//
// Returns:
//   - *phylo.Matrix: The decoded matrix
//   - error: errs.ErrEmptyInput, errs.ErrBadMagic, errs.ErrMalformedInput,
//     errs.ErrTaxonCountMismatch, or errs.ErrVectorLengthMismatch
func (d *PhylipDecoder) Decode(source string) (*phylo.Matrix, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errs.ErrEmptyInput
	}

	lines := strings.Split(strings.TrimSpace(source), "\n")
	header := phylipHeaderRe.FindStringSubmatch(lines[0])
	if header == nil {
		return nil, fmt.Errorf("%w: missing PHYLIP header counts", errs.ErrBadMagic)
	}
	ntax, _ := strconv.Atoi(header[1])
	nchar, _ := strconv.Atoi(header[2])

	taxa := make([]string, 0, ntax)
	vectors := make(map[string]string, ntax)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: alignment row %q lacks a state vector", errs.ErrMalformedInput, fields[0])
		}

		taxon := fields[0]
		if _, dup := vectors[taxon]; dup {
			return nil, fmt.Errorf("%w: duplicate alignment row for taxon %q", errs.ErrMalformedInput, taxon)
		}
		taxa = append(taxa, taxon)
		vectors[taxon] = strings.ToUpper(strings.Join(fields[1:], ""))
	}

	if len(taxa) != ntax {
		return nil, fmt.Errorf("%w: header declares %d taxa, alignment has %d", errs.ErrTaxonCountMismatch, ntax, len(taxa))
	}

	characters := syntheticCharacterNames(nchar)
	builder := phylo.NewBuilder()
	for _, taxon := range taxa {
		cells, err := splitCells(vectors[taxon])
		if err != nil {
			return nil, err
		}
		if len(cells) != nchar {
			return nil, fmt.Errorf("%w: taxon %q has %d cells, want %d", errs.ErrVectorLengthMismatch, taxon, len(cells), nchar)
		}

		builder.AddTaxon(taxon)
		for col, group := range cells {
			for _, glyph := range group {
				if glyph == "-" {
					continue
				}
				builder.AddValue(taxon, characters[col], glyph)
			}
		}
	}

	return builder.Build(), nil
}
