package codec

import (
	"errors"
	"fmt"

	"github.com/phylio/phylio/internal/options"
)

// Default logical column names on the output side.
const (
	DefaultOutputTaxonColumn     = "Taxon"
	DefaultOutputCharacterColumn = "Character"
	DefaultOutputValueColumn     = "Value"
)

// TabularEncoderConfig holds the tunable parts of a TabularEncoder.
type TabularEncoderConfig struct {
	delimiter       rune
	taxonColumn     string
	characterColumn string
	valueColumn     string
}

// NewTabularEncoderConfig creates the default encoder configuration:
// comma-delimited output with Taxon, Character and Value headers.
func NewTabularEncoderConfig() *TabularEncoderConfig {
	return &TabularEncoderConfig{
		delimiter:       ',',
		taxonColumn:     DefaultOutputTaxonColumn,
		characterColumn: DefaultOutputCharacterColumn,
		valueColumn:     DefaultOutputValueColumn,
	}
}

// setDelimiter sets the output field delimiter.
func (c *TabularEncoderConfig) setDelimiter(delimiter rune) error {
	switch delimiter {
	case ',', '\t':
		c.delimiter = delimiter
		return nil
	default:
		return fmt.Errorf("invalid delimiter: %q", delimiter)
	}
}

// setColumns sets the header names for the three logical columns.
func (c *TabularEncoderConfig) setColumns(taxon, character, value string) error {
	if taxon == "" || character == "" || value == "" {
		return errors.New("output column names must not be empty")
	}

	c.taxonColumn = taxon
	c.characterColumn = character
	c.valueColumn = value

	return nil
}

// TabularEncoderOption is a functional option for configuring TabularEncoder.
type TabularEncoderOption = options.Option[*TabularEncoderConfig]

// WithOutputDelimiter sets the output field delimiter. Valid values are
// ',' and '\t'.
func WithOutputDelimiter(delimiter rune) TabularEncoderOption {
	return options.New(func(cfg *TabularEncoderConfig) error {
		return cfg.setDelimiter(delimiter)
	})
}

// WithOutputColumns sets the header names written for the taxon, character
// and value columns.
func WithOutputColumns(taxon, character, value string) TabularEncoderOption {
	return options.New(func(cfg *TabularEncoderConfig) error {
		return cfg.setColumns(taxon, character, value)
	})
}
