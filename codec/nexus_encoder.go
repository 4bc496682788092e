package codec

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/internal/options"
	"github.com/phylio/phylio/internal/pool"
	"github.com/phylio/phylio/phylo"
)

// NexusEncoder renders a matrix as a NEXUS document: a TAXA block, a
// CHARACTERS block with CHARSTATELABELS and a fixed-width MATRIX command,
// and an ASSUMPTIONS block when the matrix carries character sets.
//
// Cells render as rank glyphs: a state's discovery rank in its character's
// alphabet indexes SymbolTable. All-genetic matrices are the exception and
// render bases as themselves. Blocks are assembled with tab indentation
// which a final pass over the document widens to four spaces.
//
// Note: NexusEncoder instances are stateless and safe for concurrent use.
type NexusEncoder struct {
	*NexusEncoderConfig
}

// NewNexusEncoder creates a NexusEncoder with the given options.
//
// Returns:
//   - *NexusEncoder: New encoder instance
//   - error: Configuration error if invalid options provided
func NewNexusEncoder(opts ...NexusEncoderOption) (*NexusEncoder, error) {
	config := NewNexusEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &NexusEncoder{NexusEncoderConfig: config}, nil
}

// Encode renders m as NEXUS text. Nothing is returned on failure, never a
// partial document.
//
// Returns:
//   - string: The rendered document
//   - error: errs.ErrEmptyMatrix for a matrix without taxa, or
//     errs.ErrAlphabetTooLarge when a character has more states than
//     SymbolTable holds glyphs
func (e *NexusEncoder) Encode(m *phylo.Matrix) (string, error) {
	if m.TaxonCount() == 0 {
		return "", errs.ErrEmptyMatrix
	}
	if err := checkAlphabets(m); err != nil {
		return "", err
	}

	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	buf.WriteString("#NEXUS\n\n")
	e.writeTaxaBlock(buf, m)
	buf.WriteString("\n\n")
	if err := e.writeCharactersBlock(buf, m); err != nil {
		return "", err
	}
	if e.assumptions && len(m.Charsets()) > 0 {
		buf.WriteString("\n\n")
		e.writeAssumptionsBlock(buf, m)
	}
	buf.WriteByte('\n')

	return strings.ReplaceAll(buf.String(), "\t", "    "), nil
}

// writeTaxaBlock writes the TAXA block: the taxon count and one label per
// line in sorted order.
func (e *NexusEncoder) writeTaxaBlock(buf *pool.ByteBuffer, m *phylo.Matrix) {
	fmt.Fprintf(buf, "BEGIN TAXA;\n\tDIMENSIONS NTAX=%d;\n\tTAXLABELS\n", m.TaxonCount())
	for _, taxon := range m.Taxa() {
		fmt.Fprintf(buf, "\t\t%s\n", taxon)
	}
	buf.WriteString("\t;\nEND;")
}

// writeCharactersBlock writes the CHARACTERS block. CHARSTATELABELS entries
// list each character's states sorted for display; the MATRIX command
// encodes them by discovery rank.
func (e *NexusEncoder) writeCharactersBlock(buf *pool.ByteBuffer, m *phylo.Matrix) error {
	characters := m.Characters()
	genetic := m.IsGenetic()

	fmt.Fprintf(buf, "BEGIN CHARACTERS;\n\tDIMENSIONS NCHAR=%d;\n", len(characters))
	fmt.Fprintf(buf, "\tFORMAT DATATYPE=STANDARD MISSING=%s GAP=- SYMBOLS=%q;\n", phylo.Missing, Legend(m))

	buf.WriteString("\tCHARSTATELABELS\n")
	for i, character := range characters {
		fmt.Fprintf(buf, "\t\t%d %s /%s", i+1, character, strings.Join(m.StatesOf(character).Sorted(), " "))
		if i < len(characters)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("\t;\n\nMATRIX\n")

	width := m.MaxTaxonLabelWidth()
	for _, taxon := range m.Taxa() {
		vector, err := renderVector(m, taxon, characters, e.polymorphism, genetic)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "%-*s    %s\n", width, taxon, vector)
	}
	buf.WriteString(";\n\nEND;")

	return nil
}

// writeAssumptionsBlock writes one CHARSET command per character set, its
// members expressed as 1-based column ranges over the sorted character
// order. Members that name no current character are skipped.
func (e *NexusEncoder) writeAssumptionsBlock(buf *pool.ByteBuffer, m *phylo.Matrix) {
	position := make(map[string]int, m.CharacterCount())
	for idx, character := range m.Characters() {
		position[character] = idx + 1
	}

	charsets := m.Charsets()
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	slices.Sort(names)

	buf.WriteString("BEGIN ASSUMPTIONS;\n")
	for _, name := range names {
		indexes := make([]int, 0, len(charsets[name]))
		for _, member := range charsets[name] {
			if pos, ok := position[member]; ok {
				indexes = append(indexes, pos)
			}
		}
		if len(indexes) == 0 {
			continue
		}
		fmt.Fprintf(buf, "\tCHARSET %s = %s;\n", name, indexesToRanges(indexes))
	}
	buf.WriteString("END;")
}
