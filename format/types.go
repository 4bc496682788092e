package format

import (
	"fmt"
	"strings"
)

type (
	Type            uint8
	CompressionType uint8
)

const (
	TypeAuto    Type = 0x0 // TypeAuto selects the format by content or file extension.
	TypeTabular Type = 0x1 // TypeTabular represents tabular text with a detected delimiter.
	TypeCSV     Type = 0x2 // TypeCSV represents comma-separated tabular text.
	TypeTSV     Type = 0x3 // TypeTSV represents tab-separated tabular text.
	TypeNexus   Type = 0x4 // TypeNexus represents the NEXUS block format.
	TypePhylip  Type = 0x5 // TypePhylip represents relaxed sequential PHYLIP.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip compression.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

func (t Type) String() string {
	switch t {
	case TypeAuto:
		return "auto"
	case TypeTabular:
		return "tabular"
	case TypeCSV:
		return "csv"
	case TypeTSV:
		return "tsv"
	case TypeNexus:
		return "nexus"
	case TypePhylip:
		return "phylip"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// ParseType converts a format name, as accepted on the command line, into
// its Type tag. Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return TypeAuto, nil
	case "tabular":
		return TypeTabular, nil
	case "csv":
		return TypeCSV, nil
	case "tsv":
		return TypeTSV, nil
	case "nexus":
		return TypeNexus, nil
	case "phylip":
		return TypePhylip, nil
	default:
		return TypeAuto, fmt.Errorf("invalid format: %q", name)
	}
}

// ParseCompression converts a compression name into its CompressionType tag.
// Matching is case-insensitive.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("invalid compression: %q", name)
	}
}
