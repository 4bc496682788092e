package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// fieldSep terminates every field written to a Digest so that field
// boundaries contribute to the hash: ("ab","c") and ("a","bc") differ.
var fieldSep = []byte{0x00}

// Digest accumulates a sequence of string fields into one xxHash64 value.
// It backs matrix fingerprints, which hash a canonical stream of
// (taxon, character, value) fields.
type Digest struct {
	x *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{x: xxhash.New()}
}

// WriteField adds one field, followed by the separator.
func (d *Digest) WriteField(field string) {
	_, _ = d.x.WriteString(field)
	_, _ = d.x.Write(fieldSep)
}

// Sum64 returns the digest of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.x.Sum64()
}
