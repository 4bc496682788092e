package codec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/phylo"
)

// SymbolTable is the glyph alphabet for fixed-width state matrices. A
// state's discovery rank in its character's alphabet indexes into this
// table, so the first state observed for a character always renders as '0'.
const SymbolTable = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxStates is the largest per-character alphabet a fixed-width render can
// express. Characters beyond it fail with errs.ErrAlphabetTooLarge.
const MaxStates = len(SymbolTable)

// PolymorphismMode selects how a cell holding more than one state renders
// in fixed-width formats.
type PolymorphismMode uint8

const (
	// PolymorphismFirst renders only the lexicographically smallest state.
	PolymorphismFirst PolymorphismMode = 0x1
	// PolymorphismMultistate renders every state, as "(X,Y)" with sorted glyphs.
	PolymorphismMultistate PolymorphismMode = 0x2
)

func (p PolymorphismMode) String() string {
	switch p {
	case PolymorphismFirst:
		return "first"
	case PolymorphismMultistate:
		return "multistate"
	default:
		return "unknown"
	}
}

// ParsePolymorphismMode converts a mode name, as accepted on the command
// line, into its PolymorphismMode. Matching is case-insensitive.
func ParsePolymorphismMode(name string) (PolymorphismMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first", "":
		return PolymorphismFirst, nil
	case "multistate":
		return PolymorphismMultistate, nil
	default:
		return PolymorphismFirst, fmt.Errorf("invalid polymorphism mode: %q", name)
	}
}

// Legend returns the space-joined symbol list a fixed-width render of m
// declares. All-genetic matrices declare the nucleotide bases themselves;
// anything else declares the first Cardinality() glyphs of SymbolTable,
// clamped to MaxStates.
func Legend(m *phylo.Matrix) string {
	if m.IsGenetic() {
		return "A C G T"
	}

	n := m.Cardinality()
	if n > MaxStates {
		n = MaxStates
	}

	glyphs := make([]string, n)
	for i := 0; i < n; i++ {
		glyphs[i] = string(SymbolTable[i])
	}

	return strings.Join(glyphs, " ")
}

// checkAlphabets rejects matrices holding a character that a rank-glyph
// render cannot express.
func checkAlphabets(m *phylo.Matrix) error {
	for _, character := range m.Characters() {
		if n := m.StatesOf(character).Len(); n > MaxStates {
			return fmt.Errorf("%w: character %q has %d states, limit is %d", errs.ErrAlphabetTooLarge, character, n, MaxStates)
		}
	}

	return nil
}

// stateGlyph maps one state of a character to its matrix glyph: the state
// itself under genetic identity encoding, otherwise the SymbolTable glyph at
// the state's discovery rank.
func stateGlyph(m *phylo.Matrix, character, state string, genetic bool) (string, error) {
	if genetic {
		return state, nil
	}

	rank, ok := m.StatesOf(character).Rank(state)
	if !ok {
		return "", fmt.Errorf("%w: state %q of character %q", errs.ErrStateNotInAlphabet, state, character)
	}
	if rank >= MaxStates {
		return "", fmt.Errorf("%w: character %q rank %d", errs.ErrAlphabetTooLarge, character, rank)
	}

	return string(SymbolTable[rank]), nil
}

// renderCell renders the glyph(s) for one (taxon, character) cell. An
// absent cell renders as the missing sentinel.
func renderCell(m *phylo.Matrix, taxon, character string, mode PolymorphismMode, genetic bool) (string, error) {
	observed := m.ObservationsOf(taxon, character)
	if len(observed) == 0 {
		return phylo.Missing, nil
	}

	if mode == PolymorphismMultistate && len(observed) > 1 {
		glyphs := make([]string, len(observed))
		for i, state := range observed {
			glyph, err := stateGlyph(m, character, state, genetic)
			if err != nil {
				return "", err
			}
			glyphs[i] = glyph
		}
		slices.Sort(glyphs)

		return "(" + strings.Join(glyphs, ",") + ")", nil
	}

	// Cells are sorted, so the first element is the lexicographic minimum.
	return stateGlyph(m, character, observed[0], genetic)
}

// renderVector renders one taxon's full state vector across characters.
func renderVector(m *phylo.Matrix, taxon string, characters []string, mode PolymorphismMode, genetic bool) (string, error) {
	var sb strings.Builder
	sb.Grow(len(characters))
	for _, character := range characters {
		cell, err := renderCell(m, taxon, character, mode, genetic)
		if err != nil {
			return "", err
		}
		sb.WriteString(cell)
	}

	return sb.String(), nil
}

// splitCells splits a fixed-width state vector into per-character glyph
// groups. A "(X,Y)" or "{XY}" group counts as a single polymorphic cell.
func splitCells(vector string) ([][]string, error) {
	var cells [][]string
	runes := []rune(vector)
	for i := 0; i < len(runes); {
		var closer rune
		switch runes[i] {
		case '(':
			closer = ')'
		case '{':
			closer = '}'
		default:
			cells = append(cells, []string{string(runes[i])})
			i++

			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == closer {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("%w: unbalanced polymorphic group in %q", errs.ErrMalformedInput, vector)
		}

		group := splitGroup(runes[i+1:end], closer == ')')
		if len(group) == 0 {
			return nil, fmt.Errorf("%w: empty polymorphic group in %q", errs.ErrMalformedInput, vector)
		}
		cells = append(cells, group)
		i = end + 1
	}

	return cells, nil
}

// splitGroup splits the body of a polymorphic group into glyphs. Comma
// groups carry comma-separated glyphs, brace groups one glyph per rune.
func splitGroup(body []rune, comma bool) []string {
	var group []string
	if comma {
		for _, glyph := range strings.Split(string(body), ",") {
			glyph = strings.TrimSpace(glyph)
			if glyph != "" {
				group = append(group, glyph)
			}
		}

		return group
	}

	for _, glyph := range body {
		if glyph != ' ' {
			group = append(group, string(glyph))
		}
	}

	return group
}

// syntheticCharacterNames generates CHAR_<index> column names for sources
// that declare no character labels. Indexes are zero based and padded to a
// fixed width so the names sort in column order.
func syntheticCharacterNames(nchar int) []string {
	width := len(strconv.Itoa(max(nchar-1, 0)))
	names := make([]string, nchar)
	for i := range names {
		names[i] = fmt.Sprintf("CHAR_%0*d", width, i)
	}

	return names
}

// indexesToRanges renders sorted 1-based positions as a range expression,
// e.g. [1 2 3 5 8 9] -> "1-3, 5, 8-9".
func indexesToRanges(indexes []int) string {
	if len(indexes) == 0 {
		return ""
	}

	sorted := slices.Clone(indexes)
	slices.Sort(sorted)

	var parts []string
	start, end := sorted[0], sorted[0]
	flush := func() {
		if start == end {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, idx := range sorted[1:] {
		if idx == end || idx == end+1 {
			end = idx
			continue
		}
		flush()
		start, end = idx, idx
	}
	flush()

	return strings.Join(parts, ", ")
}
