package compress

// ZstdCodec provides Zstandard compression for file payloads.
//
// Zstd gives the best ratio of the supported algorithms and suits archival
// copies of large character matrices. Two backends are available:
//   - Pure Go (klauspost/compress/zstd): the default, no cgo required
//   - gozstd (libzstd bindings): opt in with the cgo_zstd build tag
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
