package codec

import (
	"fmt"

	"github.com/phylio/phylio/internal/options"
)

// PhylipEncoderConfig holds the tunable parts of a PhylipEncoder.
type PhylipEncoderConfig struct {
	polymorphism PolymorphismMode
}

// NewPhylipEncoderConfig creates the default encoder configuration:
// polymorphic cells render their first state.
func NewPhylipEncoderConfig() *PhylipEncoderConfig {
	return &PhylipEncoderConfig{
		polymorphism: PolymorphismFirst,
	}
}

// setPolymorphism sets the polymorphic cell rendering mode.
func (c *PhylipEncoderConfig) setPolymorphism(mode PolymorphismMode) error {
	switch mode {
	case PolymorphismFirst, PolymorphismMultistate:
		c.polymorphism = mode
		return nil
	default:
		return fmt.Errorf("invalid polymorphism mode: %d", mode)
	}
}

// PhylipEncoderOption is a functional option for configuring PhylipEncoder.
type PhylipEncoderOption = options.Option[*PhylipEncoderConfig]

// WithPhylipPolymorphism selects how cells holding more than one state
// render in the alignment.
func WithPhylipPolymorphism(mode PolymorphismMode) PhylipEncoderOption {
	return options.New(func(cfg *PhylipEncoderConfig) error {
		return cfg.setPolymorphism(mode)
	})
}
