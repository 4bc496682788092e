package phylo

import (
	"fmt"
	"slices"
	"strings"
)

// AscertainmentMode controls whether Binarize emits the all-zero correction
// character alongside each expanded character group.
type AscertainmentMode uint8

const (
	AscertainmentAuto AscertainmentMode = 0x0 // AscertainmentAuto corrects unless every character is genetic.
	AscertainmentOn   AscertainmentMode = 0x1 // AscertainmentOn always adds correction characters.
	AscertainmentOff  AscertainmentMode = 0x2 // AscertainmentOff never adds correction characters.
)

func (a AscertainmentMode) String() string {
	switch a {
	case AscertainmentAuto:
		return "auto"
	case AscertainmentOn:
		return "on"
	case AscertainmentOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseAscertainmentMode converts a mode name, as accepted on the command
// line, into its AscertainmentMode. Matching is case-insensitive.
func ParseAscertainmentMode(name string) (AscertainmentMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return AscertainmentAuto, nil
	case "on", "true":
		return AscertainmentOn, nil
	case "off", "false":
		return AscertainmentOff, nil
	default:
		return AscertainmentAuto, fmt.Errorf("invalid ascertainment mode: %q", name)
	}
}

// ascertainmentSuffix names the correction character derived from an
// original character.
const ascertainmentSuffix = "_ASCERTAINMENT"

// Binarize expands every multistate character into presence/absence
// characters and returns the result as a new matrix.
//
// A character C with sorted states s1..sn becomes the binary characters
// C_s1..C_sn, holding "1" where the state was observed for a taxon and "0"
// where the cell holds other states. Cells with no observation contribute
// nothing, so they keep rendering as missing data. When correction applies,
// an all-zero character C_ASCERTAINMENT joins the group for every taxon.
//
// Each original character becomes a charset naming its derived characters,
// so NEXUS output can declare the partition.
func (m *Matrix) Binarize(mode AscertainmentMode) *Matrix {
	correct := mode == AscertainmentOn || (mode == AscertainmentAuto && !m.IsGenetic())

	b := NewBuilder()
	for _, taxon := range m.taxa {
		b.AddTaxon(taxon)
	}

	for _, character := range m.characters {
		states := m.alphabets[character].Sorted()

		members := make([]string, 0, len(states)+1)
		if correct {
			members = append(members, character+ascertainmentSuffix)
		}
		for _, state := range states {
			members = append(members, character+"_"+state)
		}
		b.AddCharset(character, members...)

		for _, taxon := range m.taxa {
			if correct {
				b.AddValue(taxon, character+ascertainmentSuffix, "0")
			}

			observed := m.cells[cellKey{taxon: taxon, character: character}]
			if len(observed) == 0 {
				continue
			}

			for _, state := range states {
				if slices.Contains(observed, state) {
					b.AddValue(taxon, character+"_"+state, "1")
				} else {
					b.AddValue(taxon, character+"_"+state, "0")
				}
			}
		}
	}

	return b.Build()
}
