// Package codec implements the text codecs that move matrices in and out of
// the supported character-data formats.
//
// Every codec is text-in/text-out and performs no I/O: decoders turn a
// source string into a phylo.Matrix, encoders render a phylo.Matrix into an
// output string. Reading files, decompressing payloads and decoding
// charsets all happen in outer layers before a codec runs.
//
// Codec pairs:
//   - TabularDecoder / TabularEncoder: delimiter-separated
//     (taxon, character, value) triples with a header row.
//   - NexusDecoder / NexusEncoder: NEXUS blocks (TAXA, CHARACTERS and,
//     when the matrix carries charsets, ASSUMPTIONS).
//   - PhylipDecoder / PhylipEncoder: relaxed sequential PHYLIP.
//
// Encoders and decoders are created through New* factories taking
// functional options, validate their configuration eagerly, and are safe
// for concurrent use once constructed (all state lives in the arguments).
//
// Fixed-width formats share one symbol substitution rule: a cell's
// representative state is looked up in its character's discovery-order
// alphabet and the zero-based rank selects a glyph from SymbolTable.
// Missing cells render as "?". Alphabets beyond MaxStates states cannot be
// expressed and fail with errs.ErrAlphabetTooLarge before any output is
// produced. All-genetic matrices are instead encoded with the nucleotide
// bases themselves.
package codec
