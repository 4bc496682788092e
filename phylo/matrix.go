package phylo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/internal/hash"
)

// Triple is a single observation row: one state value observed for one
// (taxon, character) pair.
type Triple struct {
	Taxon     string
	Character string
	Value     string
}

// Matrix is the immutable in-memory representation of a character data set.
//
// It holds the registered taxa, the characters with their discovered state
// alphabets, and the set of states observed for each (taxon, character)
// cell. An absent cell means missing data. All accessors return copies and
// iterate in sorted order, so anything rendered from a Matrix is
// deterministic.
//
// A Matrix is assembled once by Builder.Build and never mutated; transforms
// such as Binarize and RenameTaxa return new matrices.
type Matrix struct {
	taxa          []string             // sorted
	characters    []string             // sorted
	alphabets     map[string]*Alphabet // keyed by character
	cells         map[cellKey][]string // sorted state slices
	charsets      map[string][]string  // sorted, deduplicated member lists
	maxTaxonWidth int
}

// Taxa returns the taxon labels in sorted order.
//
// The returned slice is a copy and safe to modify.
func (m *Matrix) Taxa() []string {
	return slices.Clone(m.taxa)
}

// Characters returns the character labels in sorted order.
//
// The returned slice is a copy and safe to modify.
func (m *Matrix) Characters() []string {
	return slices.Clone(m.characters)
}

// TaxonCount returns the number of registered taxa.
func (m *Matrix) TaxonCount() int {
	return len(m.taxa)
}

// CharacterCount returns the number of characters with at least one
// observed state.
func (m *Matrix) CharacterCount() int {
	return len(m.characters)
}

// HasTaxon reports whether taxon is registered.
func (m *Matrix) HasTaxon(taxon string) bool {
	_, ok := slices.BinarySearch(m.taxa, taxon)
	return ok
}

// HasCharacter reports whether character has a discovered alphabet.
func (m *Matrix) HasCharacter(character string) bool {
	_, ok := slices.BinarySearch(m.characters, character)
	return ok
}

// MaxTaxonLabelWidth returns the length in bytes of the longest taxon
// label. Fixed-width renders left-justify labels to this width.
func (m *Matrix) MaxTaxonLabelWidth() int {
	return m.maxTaxonWidth
}

// StatesOf returns the alphabet discovered for character, or nil when the
// character is unknown. The alphabet is a read-only view, not a copy.
func (m *Matrix) StatesOf(character string) *Alphabet {
	return m.alphabets[character]
}

// ObservationsOf returns the states observed for the (taxon, character)
// cell in sorted order. An empty result means missing data.
//
// The returned slice is a copy and safe to modify.
func (m *Matrix) ObservationsOf(taxon, character string) []string {
	return slices.Clone(m.cells[cellKey{taxon: taxon, character: character}])
}

// Cardinality returns the size of the largest character alphabet. Renders
// with a shared symbol legend size it from this value.
func (m *Matrix) Cardinality() int {
	var max int
	for _, alphabet := range m.alphabets {
		if n := alphabet.Len(); n > max {
			max = n
		}
	}

	return max
}

// IsBinary reports whether every character alphabet is binary. A matrix
// with no characters is not binary.
func (m *Matrix) IsBinary() bool {
	if len(m.characters) == 0 {
		return false
	}

	for _, alphabet := range m.alphabets {
		if !alphabet.IsBinary() {
			return false
		}
	}

	return true
}

// IsGenetic reports whether every character alphabet holds only nucleotide
// bases. A matrix with no characters is not genetic.
func (m *Matrix) IsGenetic() bool {
	if len(m.characters) == 0 {
		return false
	}

	for _, alphabet := range m.alphabets {
		if !alphabet.IsGenetic() {
			return false
		}
	}

	return true
}

// Charsets returns the named character groups carried by the matrix.
//
// The returned map and its member slices are copies and safe to modify.
func (m *Matrix) Charsets() map[string][]string {
	out := make(map[string][]string, len(m.charsets))
	for name, members := range m.charsets {
		out[name] = slices.Clone(members)
	}

	return out
}

// Triples returns every observation as a flat row stream in the canonical
// render order: characters outermost, taxa inside each character, values
// sorted inside each cell. Missing cells contribute nothing.
func (m *Matrix) Triples() []Triple {
	triples := make([]Triple, 0, len(m.cells))
	for _, character := range m.characters {
		for _, taxon := range m.taxa {
			for _, value := range m.cells[cellKey{taxon: taxon, character: character}] {
				triples = append(triples, Triple{Taxon: taxon, Character: character, Value: value})
			}
		}
	}

	return triples
}

// Fingerprint returns a 64-bit content hash of the matrix.
//
// Two matrices holding the same taxa, observations and charsets produce the
// same fingerprint regardless of construction order. Watch-style callers
// use it to skip rewriting output whose source content did not change.
func (m *Matrix) Fingerprint() uint64 {
	d := hash.NewDigest()

	// Section markers keep the taxon, cell and charset field streams from
	// aliasing each other.
	d.WriteField("taxa")
	for _, taxon := range m.taxa {
		d.WriteField(taxon)
	}

	d.WriteField("cells")
	for _, t := range m.Triples() {
		d.WriteField(t.Taxon)
		d.WriteField(t.Character)
		d.WriteField(t.Value)
	}

	d.WriteField("charsets")
	names := make([]string, 0, len(m.charsets))
	for name := range m.charsets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		d.WriteField(name)
		for _, member := range m.charsets[name] {
			d.WriteField(member)
		}
	}

	return d.Sum64()
}

// Validate audits the internal invariants: every cell belongs to a
// registered taxon, every cell value is ranked in its character's alphabet,
// and the Missing sentinel appears nowhere.
//
// Matrices assembled by a Builder always pass. Validate exists to check
// matrices after custom transforms and inside tests.
//
// Returns:
//   - error: errs.ErrTaxonNotRegistered or errs.ErrStateNotInAlphabet
//     describing the first violation in sorted cell order, or nil
func (m *Matrix) Validate() error {
	keys := make([]cellKey, 0, len(m.cells))
	for key := range m.cells {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b cellKey) int {
		if c := strings.Compare(a.taxon, b.taxon); c != 0 {
			return c
		}

		return strings.Compare(a.character, b.character)
	})

	for _, key := range keys {
		if !m.HasTaxon(key.taxon) {
			return fmt.Errorf("%w: %q", errs.ErrTaxonNotRegistered, key.taxon)
		}

		alphabet := m.alphabets[key.character]
		if alphabet == nil {
			return fmt.Errorf("%w: character %q has no alphabet", errs.ErrStateNotInAlphabet, key.character)
		}

		for _, value := range m.cells[key] {
			if value == Missing || !alphabet.Has(value) {
				return fmt.Errorf("%w: state %q of cell (%s, %s)", errs.ErrStateNotInAlphabet, value, key.taxon, key.character)
			}
		}
	}

	for _, character := range m.characters {
		if a := m.alphabets[character]; a != nil && a.Has(Missing) {
			return fmt.Errorf("%w: missing sentinel in alphabet of %q", errs.ErrStateNotInAlphabet, character)
		}
	}

	return nil
}

// RenameTaxa returns a copy of the matrix with taxon labels mapped through
// names. Taxa absent from the map keep their label.
//
// Returns:
//   - *Matrix: The relabeled matrix
//   - error: errs.ErrDuplicateLabel when two taxa map to the same label
func (m *Matrix) RenameTaxa(names map[string]string) (*Matrix, error) {
	renamed, err := renameAll(m.taxa, names)
	if err != nil {
		return nil, err
	}

	out := &Matrix{
		taxa:       renamed,
		characters: slices.Clone(m.characters),
		alphabets:  cloneAlphabets(m.alphabets),
		cells:      make(map[cellKey][]string, len(m.cells)),
		charsets:   make(map[string][]string, len(m.charsets)),
	}
	slices.Sort(out.taxa)

	for key, values := range m.cells {
		key.taxon = renameLabel(key.taxon, names)
		out.cells[key] = slices.Clone(values)
	}
	for name, members := range m.charsets {
		out.charsets[name] = slices.Clone(members)
	}
	for _, taxon := range out.taxa {
		if n := len(taxon); n > out.maxTaxonWidth {
			out.maxTaxonWidth = n
		}
	}

	return out, nil
}

// RenameCharacters returns a copy of the matrix with character labels
// mapped through names. Charset member lists follow the renaming; charset
// names themselves are left alone. Characters absent from the map keep
// their label.
//
// Returns:
//   - *Matrix: The relabeled matrix
//   - error: errs.ErrDuplicateLabel when two characters map to the same label
func (m *Matrix) RenameCharacters(names map[string]string) (*Matrix, error) {
	renamed, err := renameAll(m.characters, names)
	if err != nil {
		return nil, err
	}

	out := &Matrix{
		taxa:          slices.Clone(m.taxa),
		characters:    renamed,
		alphabets:     make(map[string]*Alphabet, len(m.alphabets)),
		cells:         make(map[cellKey][]string, len(m.cells)),
		charsets:      make(map[string][]string, len(m.charsets)),
		maxTaxonWidth: m.maxTaxonWidth,
	}
	slices.Sort(out.characters)

	for character, alphabet := range m.alphabets {
		out.alphabets[renameLabel(character, names)] = alphabet.clone()
	}
	for key, values := range m.cells {
		key.character = renameLabel(key.character, names)
		out.cells[key] = slices.Clone(values)
	}
	for name, members := range m.charsets {
		mapped := make([]string, len(members))
		for i, member := range members {
			mapped[i] = renameLabel(member, names)
		}
		out.charsets[name] = dedupeSorted(mapped)
	}

	return out, nil
}

// renameLabel maps label through names, keeping it when unmapped.
func renameLabel(label string, names map[string]string) string {
	if to, ok := names[label]; ok {
		return to
	}

	return label
}

// renameAll maps every label and rejects collisions among the results.
func renameAll(labels []string, names map[string]string) ([]string, error) {
	out := make([]string, len(labels))
	seen := make(map[string]string, len(labels))
	for i, label := range labels {
		to := renameLabel(label, names)
		if prev, dup := seen[to]; dup {
			return nil, fmt.Errorf("%w: %q and %q both rename to %q", errs.ErrDuplicateLabel, prev, label, to)
		}
		seen[to] = label
		out[i] = to
	}

	return out, nil
}

// cloneAlphabets deep-copies an alphabet map.
func cloneAlphabets(alphabets map[string]*Alphabet) map[string]*Alphabet {
	out := make(map[string]*Alphabet, len(alphabets))
	for character, alphabet := range alphabets {
		out[character] = alphabet.clone()
	}

	return out
}
