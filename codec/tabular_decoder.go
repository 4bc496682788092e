package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/phylio/phylio/errs"
	"github.com/phylio/phylio/internal/options"
	"github.com/phylio/phylio/phylo"
	"github.com/phylio/phylio/slug"
)

// Column inference candidates, tried in order against slugged header names.
var (
	taxonCandidates     = []string{"taxon", "species", "language", "doculect", "manuscript", "witness"}
	characterCandidates = []string{"character", "feature", "property", "position"}
	valueCandidates     = []string{"value", "observation", "cognate", "lesson", "reading"}
)

// TabularDecoder parses delimiter-separated triple text into a matrix.
//
// The input must carry a header row. Each logical column (taxon, character,
// value) is resolved in order: the explicit WithInputColumns name, the
// default name, then inference by substring match of well-known candidates
// against the slugged header names.
//
// Note: TabularDecoder instances are stateless and safe for concurrent use.
type TabularDecoder struct {
	*TabularDecoderConfig
}

// NewTabularDecoder creates a TabularDecoder with the given options.
//
// Returns:
//   - *TabularDecoder: New decoder instance
//   - error: Configuration error if invalid options provided
func NewTabularDecoder(opts ...TabularDecoderOption) (*TabularDecoder, error) {
	config := NewTabularDecoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &TabularDecoder{TabularDecoderConfig: config}, nil
}

// Decode parses source into a matrix.
//
// Rows whose value field is the missing sentinel register the taxon only.
// Repeated (taxon, character) rows accumulate into a polymorphic cell.
//
// Returns:
//   - *phylo.Matrix: Matrix built from the triples
//   - error: errs.ErrEmptyInput, errs.ErrMissingColumn, errs.ErrDuplicateColumn,
//     or errs.ErrMalformedInput carrying the offending row context
func (d *TabularDecoder) Decode(source string) (*phylo.Matrix, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errs.ErrEmptyInput
	}

	delimiter := d.delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(source)
	}

	reader := csv.NewReader(strings.NewReader(source))
	reader.Comma = delimiter

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", errs.ErrMalformedInput, err)
	}

	cols, err := d.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	builder := phylo.NewBuilder()
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv errors already carry the line number.
			return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
		}

		builder.AddValue(record[cols.taxon], record[cols.character], record[cols.value])
	}

	return builder.Build(), nil
}

// DetectDelimiter inspects the header line of source and picks the more
// frequent of comma and tab, preferring comma on a tie.
func DetectDelimiter(source string) rune {
	line, _, _ := strings.Cut(source, "\n")
	if strings.Count(line, ",") >= strings.Count(line, "\t") {
		return ','
	}

	return '\t'
}

// columnIndexes locates the three logical columns inside the header row.
type columnIndexes struct {
	taxon     int
	character int
	value     int
}

// resolveColumns maps the configured or inferred column names onto header
// positions. Each position may serve at most one logical column.
func (d *TabularDecoder) resolveColumns(header []string) (columnIndexes, error) {
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return columnIndexes{}, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}

	claimed := make(map[int]struct{}, 3)
	claim := func(idx int) bool {
		if _, taken := claimed[idx]; taken {
			return false
		}
		claimed[idx] = struct{}{}

		return true
	}

	resolve := func(explicit, fallback string, candidates []string) (int, error) {
		if explicit != "" {
			idx := slices.Index(header, explicit)
			if idx < 0 {
				return 0, fmt.Errorf("%w: %q", errs.ErrMissingColumn, explicit)
			}
			if !claim(idx) {
				return 0, fmt.Errorf("%w: %q claimed twice", errs.ErrDuplicateColumn, explicit)
			}

			return idx, nil
		}

		if idx := slices.Index(header, fallback); idx >= 0 && claim(idx) {
			return idx, nil
		}

		for _, candidate := range candidates {
			for idx, name := range header {
				if _, taken := claimed[idx]; taken {
					continue
				}
				if strings.Contains(slug.Slug(name, slug.LevelFull), candidate) {
					claimed[idx] = struct{}{}

					return idx, nil
				}
			}
		}

		return 0, fmt.Errorf("%w: no column matches %q", errs.ErrMissingColumn, fallback)
	}

	var (
		cols columnIndexes
		err  error
	)
	if cols.taxon, err = resolve(d.taxonColumn, DefaultTaxonColumn, taxonCandidates); err != nil {
		return columnIndexes{}, err
	}
	if cols.character, err = resolve(d.characterColumn, DefaultCharacterColumn, characterCandidates); err != nil {
		return columnIndexes{}, err
	}
	if cols.value, err = resolve(d.valueColumn, DefaultValueColumn, valueCandidates); err != nil {
		return columnIndexes{}, err
	}

	return cols, nil
}
