package phylo

import "slices"

// Alphabet is the set of distinct states discovered for a single character.
//
// Two orderings are preserved. Discovery order is the order in which states
// were first observed while the matrix was built; fixed-width renders derive
// symbol ranks from it. Sorted order is lexicographic and drives display
// surfaces such as state labels and legends.
type Alphabet struct {
	states []string       // discovery order
	ranks  map[string]int // state -> index into states
}

func newAlphabet() *Alphabet {
	return &Alphabet{ranks: make(map[string]int)}
}

// add registers a state. States already seen keep their original rank.
func (a *Alphabet) add(state string) {
	if _, seen := a.ranks[state]; seen {
		return
	}
	a.ranks[state] = len(a.states)
	a.states = append(a.states, state)
}

// Len returns the number of distinct states.
func (a *Alphabet) Len() int {
	return len(a.states)
}

// Has reports whether state was observed for this character.
func (a *Alphabet) Has(state string) bool {
	_, ok := a.ranks[state]
	return ok
}

// Rank returns the discovery rank of state. The first state observed has
// rank 0. The second return value is false when the state was never
// observed.
func (a *Alphabet) Rank(state string) (int, bool) {
	rank, ok := a.ranks[state]
	return rank, ok
}

// States returns the states in discovery order.
//
// The returned slice is a copy and safe to modify.
func (a *Alphabet) States() []string {
	return slices.Clone(a.states)
}

// Sorted returns the states in lexicographic order.
//
// The returned slice is a copy and safe to modify.
func (a *Alphabet) Sorted() []string {
	out := slices.Clone(a.states)
	slices.Sort(out)

	return out
}

// IsBinary reports whether every state is "0" or "1".
// An empty alphabet is not binary.
func (a *Alphabet) IsBinary() bool {
	if len(a.states) == 0 {
		return false
	}

	for _, state := range a.states {
		if state != "0" && state != "1" {
			return false
		}
	}

	return true
}

// IsGenetic reports whether every state is one of the nucleotide bases
// "A", "C", "G" or "T". An empty alphabet is not genetic.
func (a *Alphabet) IsGenetic() bool {
	if len(a.states) == 0 {
		return false
	}

	for _, state := range a.states {
		switch state {
		case "A", "C", "G", "T":
		default:
			return false
		}
	}

	return true
}

// clone returns an independent copy of the alphabet.
func (a *Alphabet) clone() *Alphabet {
	c := &Alphabet{
		states: slices.Clone(a.states),
		ranks:  make(map[string]int, len(a.ranks)),
	}
	for state, rank := range a.ranks {
		c.ranks[state] = rank
	}

	return c
}
