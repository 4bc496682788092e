// Package errs defines the sentinel errors shared across phylio packages.
//
// Errors come in two tiers. Kind sentinels (ErrMalformedInput,
// ErrAlphabetTooLarge, ErrStateNotInAlphabet, ErrTaxonNotRegistered,
// ErrEmptyMatrix) classify every failure the library can produce. Detail
// sentinels wrap a kind at declaration time, so callers can match either
// level with errors.Is:
//
//	if errors.Is(err, errs.ErrMissingColumn) { ... }  // exact cause
//	if errors.Is(err, errs.ErrMalformedInput) { ... } // any parse failure
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every error returned by a decoder, encoder, or matrix
// operation wraps exactly one of these.
var (
	// ErrMalformedInput reports input text that cannot be parsed into a
	// matrix: missing headers, truncated rows, undeclared symbols.
	ErrMalformedInput = errors.New("malformed input")

	// ErrAlphabetTooLarge reports a character whose state count exceeds the
	// renderable symbol range of a target format.
	ErrAlphabetTooLarge = errors.New("alphabet too large")

	// ErrStateNotInAlphabet reports an observation value that is absent from
	// its character's registered alphabet.
	ErrStateNotInAlphabet = errors.New("state not in alphabet")

	// ErrTaxonNotRegistered reports an observation attributed to a taxon the
	// matrix never registered.
	ErrTaxonNotRegistered = errors.New("taxon not registered")

	// ErrEmptyMatrix reports a render request against a matrix with no taxa.
	ErrEmptyMatrix = errors.New("empty matrix")
)

// Detail sentinels for tabular input.
var (
	// ErrEmptyInput reports input with no content rows and no header.
	ErrEmptyInput = fmt.Errorf("%w: empty input", ErrMalformedInput)

	// ErrMissingColumn reports a header row lacking a required column.
	ErrMissingColumn = fmt.Errorf("%w: required column missing", ErrMalformedInput)

	// ErrDuplicateColumn reports a header row naming the same column twice.
	ErrDuplicateColumn = fmt.Errorf("%w: duplicate column", ErrMalformedInput)
)

// Argument sentinels for matrix transforms.
var (
	// ErrDuplicateLabel reports a rename that would map two distinct taxa or
	// characters to the same label.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// Detail sentinels for NEXUS and PHYLIP input.
var (
	// ErrBadMagic reports input that does not start with the format's
	// mandatory marker.
	ErrBadMagic = fmt.Errorf("%w: bad magic", ErrMalformedInput)

	// ErrTaxonCountMismatch reports a taxon count that disagrees with the
	// declared NTAX dimension.
	ErrTaxonCountMismatch = fmt.Errorf("%w: taxon count mismatch", ErrMalformedInput)

	// ErrVectorLengthMismatch reports a character vector whose length
	// disagrees with the declared NCHAR dimension.
	ErrVectorLengthMismatch = fmt.Errorf("%w: vector length mismatch", ErrMalformedInput)

	// ErrUnknownSymbol reports a matrix glyph outside the declared symbol
	// set of the block being parsed.
	ErrUnknownSymbol = fmt.Errorf("%w: unknown symbol", ErrMalformedInput)
)
