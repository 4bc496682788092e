// Package phylo provides the in-memory representation of phylogenetic
// character data shared by every codec in the module.
//
// The central type is Matrix: an immutable value holding a set of taxa, a
// set of characters with their discovered state alphabets, and the states
// observed for each (taxon, character) pair. A cell holds a set of states
// rather than a scalar because a taxon may be polymorphic for a character.
//
// Matrices are assembled in a single pass through a Builder:
//
//	b := phylo.NewBuilder()
//	b.AddValue("Latin", "ash", "cinis")
//	b.AddValue("Latin", "ash", "cineris") // polymorphic cell
//	b.AddValue("Greek", "ash", "?")       // missing: registers the taxon only
//	m := b.Build()
//
// The missing-data sentinel "?" is handled at the model boundary: adding it
// registers the taxon but never touches alphabets or cells, so an absent
// cell is the one and only representation of missing data.
//
// Alphabets preserve two orderings. Discovery order (first observation wins)
// supplies the symbol ranks used by fixed-width renders; lexicographic order
// drives display surfaces such as state labels. All Matrix accessors return
// copies and iterate in sorted order, so renders are deterministic.
package phylo
