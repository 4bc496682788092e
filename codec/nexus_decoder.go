package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/phylo"
)

// nexusMagic identifies a NEXUS source. Matching is case-insensitive.
const nexusMagic = "#NEXUS"

var (
	nexusBeginRe   = regexp.MustCompile(`^BEGIN\s+(\S+)\s*;$`)
	nexusNtaxRe    = regexp.MustCompile(`NTAX\s*=\s*(\d+)`)
	nexusNcharRe   = regexp.MustCompile(`NCHAR\s*=\s*(\d+)`)
	nexusMissingRe = regexp.MustCompile(`MISSING\s*=\s*(\S)`)
	nexusGapRe     = regexp.MustCompile(`GAP\s*=\s*(\S)`)
	nexusSymbolsRe = regexp.MustCompile(`SYMBOLS\s*=\s*"([^"]+)"`)
	nexusLabelRe   = regexp.MustCompile(`^(\d+)\s+(\S+)(?:\s*/(.+))?$`)
	nexusCharsetRe = regexp.MustCompile(`(?i)^CHARSET\s+([^=\s]+)\s*=\s*(.+)$`)
)

// NexusDecoder parses NEXUS documents into matrices.
//
// Parsing runs a small automaton over block commands, the way the format's
// semicolon-terminated grammar invites, rather than a full NEXUS grammar.
// TAXA blocks are informational only: the taxa and their vectors come from
// the MATRIX command. CHARSTATELABELS entries name the columns and, when a
// "/" state list is present, let glyphs resolve back to the declared state
// values. Columns without labels get synthetic CHAR_ names, and CHARSET
// commands become character sets on the decoded matrix.
//
// Note: NexusDecoder instances are stateless and safe for concurrent use.
type NexusDecoder struct{}

// NewNexusDecoder creates a NexusDecoder.
func NewNexusDecoder() *NexusDecoder {
	return &NexusDecoder{}
}

// Decode parses source into a matrix.
//
// Returns:
//   - *phylo.Matrix: The decoded matrix
//   - error: errs.ErrEmptyInput, errs.ErrBadMagic, errs.ErrMalformedInput,
//     errs.ErrTaxonCountMismatch, errs.ErrVectorLengthMismatch, or
//     errs.ErrUnknownSymbol
func (d *NexusDecoder) Decode(source string) (*phylo.Matrix, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errs.ErrEmptyInput
	}

	doc, err := scanNexus(source)
	if err != nil {
		return nil, err
	}

	return doc.build()
}

// nexusParserState tracks where in the block structure the scan is.
type nexusParserState uint8

const (
	nexusStateOutOfBlock nexusParserState = iota
	nexusStateInBlock
)

// nexusCharsetCmd is one parsed CHARSET command, its ranges already
// expanded to 1-based column positions.
type nexusCharsetCmd struct {
	name      string
	positions []int
}

// nexusDocument aggregates the commands harvested while scanning a source.
type nexusDocument struct {
	ntax    int
	nchar   int
	missing string
	gap     string
	symbols string

	labels   map[int]string      // declared column position -> character name
	states   map[string][]string // character name -> declared state values
	taxa     []string            // matrix row order
	vectors  map[string]string
	charsets []nexusCharsetCmd
}

// scanNexus runs the block automaton over source and collects every command
// it understands. Unknown commands are ignored.
func scanNexus(source string) (*nexusDocument, error) {
	trimmed := strings.TrimLeftFunc(source, unicode.IsSpace)
	if len(trimmed) < len(nexusMagic) || !strings.EqualFold(trimmed[:len(nexusMagic)], nexusMagic) {
		return nil, fmt.Errorf("%w: source does not identify as %s", errs.ErrBadMagic, nexusMagic)
	}

	doc := &nexusDocument{
		missing: phylo.Missing,
		gap:     "-",
		symbols: SymbolTable,
		labels:  make(map[int]string),
		states:  make(map[string][]string),
		vectors: make(map[string]string),
	}

	state := nexusStateOutOfBlock
	var buffer strings.Builder
	for _, char := range trimmed[len(nexusMagic):] {
		buffer.WriteRune(char)
		if char != ';' {
			continue
		}

		command := buffer.String()
		buffer.Reset()

		switch state {
		case nexusStateOutOfBlock:
			if !nexusBeginRe.MatchString(strings.ToUpper(strings.TrimSpace(command))) {
				return nil, fmt.Errorf("%w: expected a BEGIN command, got %q", errs.ErrMalformedInput, strings.TrimSpace(command))
			}
			state = nexusStateInBlock
		case nexusStateInBlock:
			if isNexusEnd(command) {
				state = nexusStateOutOfBlock
				continue
			}
			if err := doc.applyCommand(command); err != nil {
				return nil, err
			}
		}
	}

	if state == nexusStateInBlock {
		return nil, fmt.Errorf("%w: unterminated block", errs.ErrMalformedInput)
	}
	if strings.TrimSpace(buffer.String()) != "" {
		return nil, fmt.Errorf("%w: trailing content %q", errs.ErrMalformedInput, strings.TrimSpace(buffer.String()))
	}

	return doc, nil
}

// isNexusEnd reports whether command closes a block.
func isNexusEnd(command string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(command), ""), "END;")
}

// applyCommand dispatches one semicolon-terminated block command.
func (doc *nexusDocument) applyCommand(raw string) error {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToUpper(strings.TrimSuffix(fields[0], ";")) {
	case "DIMENSIONS":
		doc.applyDimensions(strings.ToUpper(raw))
	case "FORMAT":
		doc.applyFormat(strings.ToUpper(raw))
	case "CHARSTATELABELS":
		return doc.applyLabels(raw)
	case "MATRIX":
		return doc.applyMatrix(raw)
	case "CHARSET":
		return doc.applyCharset(raw)
	}

	return nil
}

func (doc *nexusDocument) applyDimensions(upper string) {
	if match := nexusNtaxRe.FindStringSubmatch(upper); match != nil {
		doc.ntax, _ = strconv.Atoi(match[1])
	}
	if match := nexusNcharRe.FindStringSubmatch(upper); match != nil {
		doc.nchar, _ = strconv.Atoi(match[1])
	}
}

func (doc *nexusDocument) applyFormat(upper string) {
	if match := nexusMissingRe.FindStringSubmatch(upper); match != nil {
		doc.missing = match[1]
	}
	if match := nexusGapRe.FindStringSubmatch(upper); match != nil {
		doc.gap = match[1]
	}
	if match := nexusSymbolsRe.FindStringSubmatch(upper); match != nil {
		doc.symbols = strings.ReplaceAll(match[1], " ", "")
	}
}

// applyLabels parses CHARSTATELABELS entries of the form
// "3 name /state state" or "3 name", separated by commas.
func (doc *nexusDocument) applyLabels(raw string) error {
	normalized := strings.Join(strings.Fields(raw), " ")
	normalized = strings.TrimSuffix(normalized, ";")
	_, body, _ := strings.Cut(normalized, " ")

	for _, entry := range strings.Split(body, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		match := nexusLabelRe.FindStringSubmatch(entry)
		if match == nil {
			return fmt.Errorf("%w: bad CHARSTATELABELS entry %q", errs.ErrMalformedInput, entry)
		}

		position, _ := strconv.Atoi(match[1])
		doc.labels[position] = match[2]
		if match[3] != "" {
			doc.states[match[2]] = strings.Fields(match[3])
		}
	}

	return nil
}

// applyMatrix parses MATRIX rows. Each nonempty line is a taxon label
// followed by its state vector; spacing inside the vector is dropped and
// glyphs are uppercased to match the declared symbols.
func (doc *nexusDocument) applyMatrix(raw string) error {
	body := strings.TrimSpace(raw)
	body = strings.TrimSuffix(body, ";")
	body = body[len("MATRIX"):]

	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return fmt.Errorf("%w: matrix row %q lacks a state vector", errs.ErrMalformedInput, fields[0])
		}

		taxon := fields[0]
		if _, dup := doc.vectors[taxon]; dup {
			return fmt.Errorf("%w: duplicate matrix row for taxon %q", errs.ErrMalformedInput, taxon)
		}
		doc.taxa = append(doc.taxa, taxon)
		doc.vectors[taxon] = strings.ToUpper(strings.Join(fields[1:], ""))
	}

	return nil
}

// applyCharset parses one CHARSET command. Positions accept single columns
// and inclusive ranges, comma separated: "CHARSET f1 = 1-3, 5;".
func (doc *nexusDocument) applyCharset(raw string) error {
	normalized := strings.Join(strings.Fields(raw), " ")
	normalized = strings.TrimSuffix(normalized, ";")

	match := nexusCharsetRe.FindStringSubmatch(normalized)
	if match == nil {
		return fmt.Errorf("%w: bad CHARSET command %q", errs.ErrMalformedInput, normalized)
	}

	var positions []int
	for _, token := range strings.Split(match[2], ",") {
		token = strings.TrimSpace(token)
		startTok, endTok, isRange := strings.Cut(token, "-")

		start, err := strconv.Atoi(strings.TrimSpace(startTok))
		if err != nil {
			return fmt.Errorf("%w: bad CHARSET range %q", errs.ErrMalformedInput, token)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(endTok)); err != nil {
				return fmt.Errorf("%w: bad CHARSET range %q", errs.ErrMalformedInput, token)
			}
		}
		if start < 1 || end < start {
			return fmt.Errorf("%w: bad CHARSET range %q", errs.ErrMalformedInput, token)
		}

		for pos := start; pos <= end; pos++ {
			positions = append(positions, pos)
		}
	}

	doc.charsets = append(doc.charsets, nexusCharsetCmd{name: match[1], positions: positions})

	return nil
}

// build reconstructs the matrix from the harvested commands.
func (doc *nexusDocument) build() (*phylo.Matrix, error) {
	if doc.ntax > 0 && len(doc.taxa) != doc.ntax {
		return nil, fmt.Errorf("%w: NTAX=%d but the matrix has %d rows", errs.ErrTaxonCountMismatch, doc.ntax, len(doc.taxa))
	}

	nchar := doc.nchar
	cells := make(map[string][][]string, len(doc.taxa))
	for _, taxon := range doc.taxa {
		groups, err := splitCells(doc.vectors[taxon])
		if err != nil {
			return nil, err
		}
		if nchar == 0 {
			nchar = len(groups)
		}
		if len(groups) != nchar {
			return nil, fmt.Errorf("%w: taxon %q has %d cells, want %d", errs.ErrVectorLengthMismatch, taxon, len(groups), nchar)
		}
		cells[taxon] = groups
	}

	characters := doc.characterNames(nchar)

	builder := phylo.NewBuilder()
	for _, taxon := range doc.taxa {
		builder.AddTaxon(taxon)
		for col, group := range cells[taxon] {
			for _, glyph := range group {
				state, err := doc.resolveState(characters[col], glyph)
				if err != nil {
					return nil, err
				}
				if state == "" {
					continue // gap
				}
				builder.AddValue(taxon, characters[col], state)
			}
		}
	}

	for _, charset := range doc.charsets {
		members := make([]string, 0, len(charset.positions))
		for _, pos := range charset.positions {
			if pos > nchar {
				return nil, fmt.Errorf("%w: CHARSET %s column %d exceeds NCHAR=%d", errs.ErrMalformedInput, charset.name, pos, nchar)
			}
			members = append(members, characters[pos-1])
		}
		builder.AddCharset(charset.name, members...)
	}

	return builder.Build(), nil
}

// characterNames resolves the name of every column: the declared label when
// one exists, a synthetic CHAR_ name otherwise.
func (doc *nexusDocument) characterNames(nchar int) []string {
	names := syntheticCharacterNames(nchar)
	for position, label := range doc.labels {
		if position >= 1 && position <= nchar {
			names[position-1] = label
		}
	}

	return names
}

// resolveState maps one matrix glyph back to a state value. The missing
// glyph maps to the model's missing sentinel, the gap glyph to the empty
// string, and anything else resolves by rank in the declared symbol list,
// then through the character's declared state values when they cover that
// rank.
func (doc *nexusDocument) resolveState(character, glyph string) (string, error) {
	switch glyph {
	case doc.missing:
		return phylo.Missing, nil
	case doc.gap:
		return "", nil
	}

	rank := strings.Index(doc.symbols, glyph)
	if rank < 0 {
		return "", fmt.Errorf("%w: glyph %q is not declared in SYMBOLS %q", errs.ErrUnknownSymbol, glyph, doc.symbols)
	}
	if states := doc.states[character]; rank < len(states) {
		return states[rank], nil
	}

	return glyph, nil
}
