package phylo

import "slices"

// Missing is the sentinel marking missing data in every text format handled
// by this module.
//
// It is special-cased at the model boundary: adding it through a Builder
// registers the taxon but never reaches an alphabet or a cell, so an absent
// cell is the only representation of missing data a Matrix can hold.
const Missing = "?"

// cellKey addresses one (taxon, character) observation cell.
type cellKey struct {
	taxon     string
	character string
}

// Builder accumulates observations and folds them into an immutable Matrix.
//
// Insertion order is preserved only where it carries meaning: each
// character's alphabet keeps the order states were first observed, which is
// what fixed-width renders derive symbol ranks from. Taxa, characters and
// cell contents are sorted when the Matrix is built.
//
// Note: The Builder is NOT thread-safe. Build may be called multiple times;
// each call returns an independent snapshot and the Builder stays usable.
type Builder struct {
	taxa      map[string]struct{}
	alphabets map[string]*Alphabet
	cells     map[cellKey]map[string]struct{}
	charsets  map[string][]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		taxa:      make(map[string]struct{}),
		alphabets: make(map[string]*Alphabet),
		cells:     make(map[cellKey]map[string]struct{}),
		charsets:  make(map[string][]string),
	}
}

// AddTaxon registers a taxon without attaching an observation.
// Registering the same taxon again is a no-op.
func (b *Builder) AddTaxon(taxon string) {
	b.taxa[taxon] = struct{}{}
}

// AddValue records one observed state for a (taxon, character) pair.
//
// The taxon is registered in every case. When value is the Missing sentinel
// the call stops there, keeping the sentinel out of the character's
// alphabet. Repeated calls for the same pair accumulate into the cell's
// state set, which is how polymorphic observations are represented.
func (b *Builder) AddValue(taxon, character, value string) {
	b.taxa[taxon] = struct{}{}
	if value == Missing {
		return
	}

	alphabet, ok := b.alphabets[character]
	if !ok {
		alphabet = newAlphabet()
		b.alphabets[character] = alphabet
	}
	alphabet.add(value)

	key := cellKey{taxon: taxon, character: character}
	cell, ok := b.cells[key]
	if !ok {
		cell = make(map[string]struct{})
		b.cells[key] = cell
	}
	cell[value] = struct{}{}
}

// AddCharset records a named group of characters, carried into NEXUS
// ASSUMPTIONS output. Calling it again with the same name extends the group.
func (b *Builder) AddCharset(name string, members ...string) {
	b.charsets[name] = append(b.charsets[name], members...)
}

// Build folds the accumulated observations into a Matrix.
func (b *Builder) Build() *Matrix {
	m := &Matrix{
		taxa:       make([]string, 0, len(b.taxa)),
		characters: make([]string, 0, len(b.alphabets)),
		alphabets:  make(map[string]*Alphabet, len(b.alphabets)),
		cells:      make(map[cellKey][]string, len(b.cells)),
		charsets:   make(map[string][]string, len(b.charsets)),
	}

	for taxon := range b.taxa {
		m.taxa = append(m.taxa, taxon)
	}
	slices.Sort(m.taxa)

	for character, alphabet := range b.alphabets {
		m.characters = append(m.characters, character)
		m.alphabets[character] = alphabet.clone()
	}
	slices.Sort(m.characters)

	for key, cell := range b.cells {
		values := make([]string, 0, len(cell))
		for value := range cell {
			values = append(values, value)
		}
		slices.Sort(values)
		m.cells[key] = values
	}

	for name, members := range b.charsets {
		m.charsets[name] = dedupeSorted(members)
	}

	for _, taxon := range m.taxa {
		if n := len(taxon); n > m.maxTaxonWidth {
			m.maxTaxonWidth = n
		}
	}

	return m
}

// dedupeSorted returns a sorted copy of values with duplicates removed.
func dedupeSorted(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)

	return slices.Compact(out)
}
