package compress

import (
	"fmt"

	"github.com/phylio/phylio/format"
)

// Compressor compresses a complete file payload in one call.
//
// Phylogenetic datasets are small by compression standards (kilobytes to a
// few megabytes), so the interface works on whole buffers rather than
// streams.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor.
//
// Thread safety: Decompressor implementations must be safe for concurrent
// use; batch conversion runs one goroutine per input file.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// The decompressor validates the data format and returns an error if the
	// data is corrupted or uses an incompatible format.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats records the outcome of one compression or decompression pass, for
// verbose logging.
type Stats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the uncompressed payload
	OriginalSize int64

	// CompressedSize is the size of the compressed payload
	CompressedSize int64
}

// Ratio returns compressed size over original size. Values below 1.0
// indicate successful compression; 0.0 when the original size is zero.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
