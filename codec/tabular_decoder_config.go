package codec

import (
	"fmt"

	"github.com/phylio/phylio/internal/options"
)

// Default logical column names on the input side, following the common
// linguistic dataset layout.
const (
	DefaultTaxonColumn     = "Language_ID"
	DefaultCharacterColumn = "Feature_ID"
	DefaultValueColumn     = "Value"
)

// TabularDecoderConfig holds the tunable parts of a TabularDecoder.
type TabularDecoderConfig struct {
	delimiter       rune // 0 means detect from the header line
	taxonColumn     string
	characterColumn string
	valueColumn     string
}

// NewTabularDecoderConfig creates the default decoder configuration:
// delimiter detection on, column names resolved from defaults and
// inference.
func NewTabularDecoderConfig() *TabularDecoderConfig {
	return &TabularDecoderConfig{}
}

// setDelimiter sets the field delimiter. Zero restores detection.
func (c *TabularDecoderConfig) setDelimiter(delimiter rune) error {
	switch delimiter {
	case ',', '\t', 0:
		c.delimiter = delimiter
		return nil
	default:
		return fmt.Errorf("invalid delimiter: %q", delimiter)
	}
}

// TabularDecoderOption is a functional option for configuring TabularDecoder.
type TabularDecoderOption = options.Option[*TabularDecoderConfig]

// WithInputDelimiter forces the field delimiter instead of detecting it
// from the header line. Valid values are ',' and '\t'.
func WithInputDelimiter(delimiter rune) TabularDecoderOption {
	return options.New(func(cfg *TabularDecoderConfig) error {
		return cfg.setDelimiter(delimiter)
	})
}

// WithInputColumns overrides the logical column names to look up in the
// header. An empty string keeps the default resolution for that slot: the
// default name first, then inference against well-known candidates.
func WithInputColumns(taxon, character, value string) TabularDecoderOption {
	return options.NoError(func(cfg *TabularDecoderConfig) {
		cfg.taxonColumn = taxon
		cfg.characterColumn = character
		cfg.valueColumn = value
	})
}
