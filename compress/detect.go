package compress

import (
	"bytes"

	"github.com/phylio/phylio/format"
)

// Magic prefixes of the supported compression containers.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect sniffs the compression container of a raw payload by its magic
// bytes. Payloads without a recognized magic are reported as
// format.CompressionNone; plain text never collides with these prefixes.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	default:
		return format.CompressionNone
	}
}
