// Package slug normalizes taxon and character labels for use as
// identifiers in strict output formats, and derives collision-free label
// sets for whole matrices.
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Level selects how aggressively Slug normalizes a label.
type Level uint8

const (
	LevelNone   Level = 0x0 // LevelNone leaves labels untouched.
	LevelSimple Level = 0x1 // LevelSimple transliterates and keeps letters, digits, "-" and "_".
	LevelFull   Level = 0x2 // LevelFull transliterates, lowercases and keeps letters only.
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelSimple:
		return "simple"
	case LevelFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name, as accepted on the command line, into
// its Level. Matching is case-insensitive.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return LevelNone, nil
	case "simple":
		return LevelSimple, nil
	case "full":
		return LevelFull, nil
	default:
		return LevelNone, fmt.Errorf("invalid slug level: %q", name)
	}
}

// stripMarks decomposes to NFD, removes combining marks and recomposes, so
// "São Tomé" becomes "Sao Tome".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug returns a normalized version of label.
//
// LevelSimple transliterates accented characters to ASCII and drops
// everything outside [A-Za-z0-9_-], so whitespace disappears. LevelFull
// additionally lowercases and keeps letters only. LevelNone returns the
// label unchanged.
//
// Slug operates on a single label and gives no uniqueness guarantee; use
// UniqueIDs to normalize a whole label set.
func Slug(label string, level Level) string {
	if level == LevelNone {
		return label
	}

	if stripped, _, err := transform.String(stripMarks, label); err == nil {
		label = stripped
	}
	if level == LevelFull {
		label = strings.ToLower(label)
	}

	var sb strings.Builder
	sb.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case level == LevelSimple && (r >= '0' && r <= '9' || r == '-' || r == '_'):
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// UniqueIDs maps labels to slugged labels that are unique within the
// result, preserving input order.
//
// Labels that remain unique after slugging pass through untouched. Labels
// that collide all receive an ordinal suffix: "-a" for the first
// occurrence, "-b" for the second, continuing with "-aa", "-ab" after the
// alphabet is exhausted.
func UniqueIDs(labels []string, level Level) []string {
	slugged := make([]string, len(labels))
	for i, label := range labels {
		slugged[i] = Slug(label, level)
	}

	total := make(map[string]int, len(slugged))
	for _, s := range slugged {
		total[s]++
	}

	out := make([]string, len(slugged))
	seen := make(map[string]int, len(slugged))
	for i, s := range slugged {
		if total[s] > 1 {
			out[i] = s + suffixLabel(seen[s])
			seen[s]++
		} else {
			out[i] = s
		}
	}

	return out
}

// suffixLabel returns the nth collision suffix: "-a", "-b", ..., "-z",
// "-aa", "-ab", ...
func suffixLabel(n int) string {
	length := 1
	span := 26
	for n >= span {
		n -= span
		span *= 26
		length++
	}

	letters := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		letters[i] = byte('a' + n%26)
		n /= 26
	}

	return "-" + string(letters)
}
