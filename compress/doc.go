// Package compress provides whole-payload compression codecs for dataset files.
//
// Character matrices travel as text files, frequently gzipped; this package
// lets the I/O layer read and write them transparently. Compression applies
// to the complete file payload, never to the text the format codecs see.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// All algorithms emit their standard file containers, so outputs remain
// readable by the matching command line tools:
//   - None (format.CompressionNone): pass-through
//   - Gzip (format.CompressionGzip): the interchange default, ".gz"
//   - Zstd (format.CompressionZstd): best ratio, ".zst"
//   - LZ4 (format.CompressionLZ4): fastest, ".lz4"
//
// Zstd has two backends: the pure Go klauspost implementation (default) and
// gozstd's libzstd bindings, selected with the cgo_zstd build tag.
//
// # Usage
//
// Codecs are looked up by tag, typically after sniffing the payload:
//
//	codec, err := compress.GetCodec(compress.Detect(raw))
//	if err != nil {
//	    return err
//	}
//	text, err := codec.Decompress(raw)
//
// All codec implementations are stateless values, safe for concurrent use;
// buffer pooling happens behind the package boundary.
package compress
