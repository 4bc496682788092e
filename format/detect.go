package format

import (
	"path/filepath"
	"strings"
)

// Detect guesses the phylogenetic format of source text.
//
// The heuristic is intentionally shallow: a "#NEXUS" marker wins, a first
// line holding exactly two integers is treated as a PHYLIP header, and
// everything else is tabular with the delimiter left to the decoder. Detect
// never fails; ambiguous input falls back to TypeTabular.
func Detect(text string) Type {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(strings.ToUpper(trimmed), "#NEXUS") {
		return TypeNexus
	}

	if line, _, ok := strings.Cut(trimmed, "\n"); ok || line != "" {
		if isPhylipHeader(line) {
			return TypePhylip
		}
	}

	return TypeTabular
}

// FromPath maps a file extension to a Type tag. Unknown extensions map to
// TypeAuto so callers can fall back to content detection.
func FromPath(path string) Type {
	switch strings.ToLower(filepath.Ext(stripCompressionExt(path))) {
	case ".csv":
		return TypeCSV
	case ".tsv", ".tab":
		return TypeTSV
	case ".nex", ".nexus", ".nxs":
		return TypeNexus
	case ".phy", ".phylip":
		return TypePhylip
	default:
		return TypeAuto
	}
}

// CompressionFromPath maps a file extension to a CompressionType tag.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// stripCompressionExt removes a trailing compression extension so that
// "data.csv.gz" resolves to the csv format.
func stripCompressionExt(path string) string {
	if CompressionFromPath(path) != CompressionNone {
		return strings.TrimSuffix(path, filepath.Ext(path))
	}

	return path
}

// isPhylipHeader reports whether a line holds the "ntax nchar" pair that
// opens a PHYLIP file.
func isPhylipHeader(line string) bool {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 2 {
		return false
	}

	for _, f := range fields {
		if f == "" {
			return false
		}
		for _, r := range f {
			if r < '0' || r > '9' {
				return false
			}
		}
	}

	return true
}
