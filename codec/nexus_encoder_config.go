package codec

import (
	"fmt"

	"github.com/phylio/phylio/internal/options"
)

// NexusEncoderConfig holds the tunable parts of a NexusEncoder.
type NexusEncoderConfig struct {
	polymorphism PolymorphismMode
	assumptions  bool
}

// NewNexusEncoderConfig creates the default encoder configuration:
// polymorphic cells render their first state, and matrices carrying
// character sets get an ASSUMPTIONS block.
func NewNexusEncoderConfig() *NexusEncoderConfig {
	return &NexusEncoderConfig{
		polymorphism: PolymorphismFirst,
		assumptions:  true,
	}
}

// setPolymorphism sets the polymorphic cell rendering mode.
func (c *NexusEncoderConfig) setPolymorphism(mode PolymorphismMode) error {
	switch mode {
	case PolymorphismFirst, PolymorphismMultistate:
		c.polymorphism = mode
		return nil
	default:
		return fmt.Errorf("invalid polymorphism mode: %d", mode)
	}
}

// NexusEncoderOption is a functional option for configuring NexusEncoder.
type NexusEncoderOption = options.Option[*NexusEncoderConfig]

// WithNexusPolymorphism selects how cells holding more than one state render
// in the MATRIX command.
func WithNexusPolymorphism(mode PolymorphismMode) NexusEncoderOption {
	return options.New(func(cfg *NexusEncoderConfig) error {
		return cfg.setPolymorphism(mode)
	})
}

// WithNexusAssumptions controls whether matrices carrying character sets get
// an ASSUMPTIONS block with CHARSET commands.
func WithNexusAssumptions(enabled bool) NexusEncoderOption {
	return options.NoError(func(cfg *NexusEncoderConfig) {
		cfg.assumptions = enabled
	})
}
