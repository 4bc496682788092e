// Package textio moves conversion payloads between disk and the text domain.
//
// Sources arrive as raw bytes that may sit inside a compression container
// and may use a legacy character encoding. Results leave as UTF-8 text that
// may need wrapping again. ReadSource and WriteResult fold both concerns
// into a single call each, so command code never touches compression codecs
// or charsets directly. The pseudo path "-" selects the standard streams.
package textio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/phylio/phylio/compress"
	"github.com/phylio/phylio/format"
)

// StreamPath is the pseudo path that selects stdin or stdout.
const StreamPath = "-"

// Byte-order marks recognized in front of source text.
var (
	utf8BOM    = []byte{0xef, 0xbb, 0xbf}
	utf16BEBOM = []byte{0xfe, 0xff}
	utf16LEBOM = []byte{0xff, 0xfe}
)

// DecodeText converts raw source bytes into a UTF-8 string.
//
// With an empty encoding name the bytes must already be Unicode: a UTF-8 BOM
// is stripped, UTF-16 input is recognized by its BOM, and anything else that
// fails UTF-8 validation is rejected so mojibake never reaches a decoder. A
// non-empty name selects a charset from the WHATWG index (latin1,
// windows-1252, koi8-r, ...) and decodes with it.
func DecodeText(data []byte, encoding string) (string, error) {
	if encoding != "" {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q", encoding)
		}

		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding %s input: %w", encoding, err)
		}

		return strings.TrimPrefix(string(decoded), "\uFEFF"), nil
	}

	switch {
	case bytes.HasPrefix(data, utf8BOM):
		data = data[len(utf8BOM):]
	case bytes.HasPrefix(data, utf16BEBOM) || bytes.HasPrefix(data, utf16LEBOM):
		return decodeUTF16(data)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("input is not valid UTF-8, pass an explicit encoding name")
	}

	return string(data), nil
}

// decodeUTF16 decodes BOM-prefixed UTF-16 data of either endianness.
func decodeUTF16(data []byte) (string, error) {
	decoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding utf-16 input: %w", err)
	}

	return string(decoded), nil
}

// ReadRaw loads the payload at path without unwrapping or decoding
// anything. The path "-" reads standard input to EOF.
func ReadRaw(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if path == StreamPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", SourceName(path), err)
	}

	return data, nil
}

// Unwrap removes a recognized compression container from a raw payload,
// reporting which one it found. Uncontained payloads pass through as
// CompressionNone.
func Unwrap(data []byte, name string) ([]byte, format.CompressionType, error) {
	ct := compress.Detect(data)
	if ct == format.CompressionNone {
		return data, ct, nil
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, ct, err
	}

	unwrapped, err := codec.Decompress(data)
	if err != nil {
		return nil, ct, fmt.Errorf("decompressing %s (%s): %w", name, ct, err)
	}

	return unwrapped, ct, nil
}

// ReadSource loads the payload at path, unwraps any recognized compression
// container, and decodes the remaining bytes into text. The path "-" reads
// standard input to EOF.
//
// Returns:
//   - string: the decoded source text
//   - error: I/O failure, corrupt container, or undecodable text
func ReadSource(path, encoding string) (string, error) {
	data, err := ReadRaw(path)
	if err != nil {
		return "", err
	}

	if data, _, err = Unwrap(data, SourceName(path)); err != nil {
		return "", err
	}

	return DecodeText(data, encoding)
}

// WriteResult stores rendered text at path, wrapping the payload in a
// compression container when compression is not CompressionNone. The path
// "-" writes standard output.
func WriteResult(path, text string, compression format.CompressionType) error {
	data := []byte(text)

	if compression != format.CompressionNone {
		codec, err := compress.GetCodec(compression)
		if err != nil {
			return err
		}

		if data, err = codec.Compress(data); err != nil {
			return fmt.Errorf("compressing %s (%s): %w", ResultName(path), compression, err)
		}
	}

	if path == StreamPath {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// SourceName returns a printable name for an input path.
func SourceName(path string) string {
	if path == StreamPath {
		return "stdin"
	}

	return path
}

// ResultName returns a printable name for an output path.
func ResultName(path string) string {
	if path == StreamPath {
		return "stdout"
	}

	return path
}
