// Package config resolves phylio's runtime settings.
//
// Settings follow the usual precedence chain: built-in defaults, then the
// .phylio.yaml config file, then PHYLIO_* environment variables, then
// command-line flags. A Profile is a fourth source pinned to one dataset: a
// TOML file recording the conversion settings that dataset needs, loaded
// with --profile and sitting between the config file and explicit flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Settings holds the knobs applied to every conversion. Values are populated
// from .phylio.yaml, PHYLIO_* env vars, and CLI flags, in rising priority.
type Settings struct {
	From          string `mapstructure:"from"`
	To            string `mapstructure:"to"`
	Encoding      string `mapstructure:"encoding"`
	Delimiter     string `mapstructure:"delimiter"`
	InputTaxa     string `mapstructure:"input_taxa"`
	InputChars    string `mapstructure:"input_chars"`
	InputValues   string `mapstructure:"input_values"`
	OutputTaxa    string `mapstructure:"output_taxa"`
	OutputChars   string `mapstructure:"output_chars"`
	OutputValues  string `mapstructure:"output_values"`
	SlugTaxa      string `mapstructure:"slug_taxa"`
	SlugChars     string `mapstructure:"slug_chars"`
	Binarize      bool   `mapstructure:"binarize"`
	Ascertainment string `mapstructure:"ascertainment"`
	Polymorphism  string `mapstructure:"polymorphism"`
	Compress      string `mapstructure:"compress"`
	Workers       int    `mapstructure:"workers"`
	Verbose       bool   `mapstructure:"verbose"`
}

// Load reads settings from viper, applying built-in defaults for any value
// not set by config file, environment, or flags.
func Load() Settings {
	viper.SetDefault("from", "auto")
	viper.SetDefault("to", "auto")
	viper.SetDefault("encoding", "")
	viper.SetDefault("delimiter", "")
	viper.SetDefault("input_taxa", "")
	viper.SetDefault("input_chars", "")
	viper.SetDefault("input_values", "")
	viper.SetDefault("output_taxa", "Taxon")
	viper.SetDefault("output_chars", "Character")
	viper.SetDefault("output_values", "Value")
	viper.SetDefault("slug_taxa", "simple")
	viper.SetDefault("slug_chars", "simple")
	viper.SetDefault("binarize", false)
	viper.SetDefault("ascertainment", "auto")
	viper.SetDefault("polymorphism", "first")
	viper.SetDefault("compress", "auto")
	viper.SetDefault("workers", 4)
	viper.SetDefault("verbose", false)

	var s Settings
	_ = viper.Unmarshal(&s)

	return s
}

// Columns names the three tabular columns a profile pins.
type Columns struct {
	Taxon     string `toml:"taxon,omitempty"`
	Character string `toml:"character,omitempty"`
	Value     string `toml:"value,omitempty"`
}

// Profile pins the conversion settings for one dataset so repeated runs stay
// reproducible. A profile lives next to the data as a TOML file; any field
// left unset falls through to the surrounding settings.
type Profile struct {
	From          string  `toml:"from,omitempty"`
	To            string  `toml:"to,omitempty"`
	Encoding      string  `toml:"encoding,omitempty"`
	Delimiter     string  `toml:"delimiter,omitempty"`
	InputColumns  Columns `toml:"input_columns"`
	OutputColumns Columns `toml:"output_columns"`
	SlugTaxa      string  `toml:"slug_taxa,omitempty"`
	SlugChars     string  `toml:"slug_chars,omitempty"`
	Binarize      *bool   `toml:"binarize,omitempty"`
	Ascertainment string  `toml:"ascertainment,omitempty"`
	Polymorphism  string  `toml:"polymorphism,omitempty"`
	Compress      string  `toml:"compress,omitempty"`
}

// Apply overlays the profile's set fields onto s. Unset fields (empty
// strings, nil Binarize) leave s untouched.
func (p *Profile) Apply(s *Settings) {
	if p.From != "" {
		s.From = p.From
	}
	if p.To != "" {
		s.To = p.To
	}
	if p.Encoding != "" {
		s.Encoding = p.Encoding
	}
	if p.Delimiter != "" {
		s.Delimiter = p.Delimiter
	}
	if p.InputColumns.Taxon != "" {
		s.InputTaxa = p.InputColumns.Taxon
	}
	if p.InputColumns.Character != "" {
		s.InputChars = p.InputColumns.Character
	}
	if p.InputColumns.Value != "" {
		s.InputValues = p.InputColumns.Value
	}
	if p.OutputColumns.Taxon != "" {
		s.OutputTaxa = p.OutputColumns.Taxon
	}
	if p.OutputColumns.Character != "" {
		s.OutputChars = p.OutputColumns.Character
	}
	if p.OutputColumns.Value != "" {
		s.OutputValues = p.OutputColumns.Value
	}
	if p.SlugTaxa != "" {
		s.SlugTaxa = p.SlugTaxa
	}
	if p.SlugChars != "" {
		s.SlugChars = p.SlugChars
	}
	if p.Binarize != nil {
		s.Binarize = *p.Binarize
	}
	if p.Ascertainment != "" {
		s.Ascertainment = p.Ascertainment
	}
	if p.Polymorphism != "" {
		s.Polymorphism = p.Polymorphism
	}
	if p.Compress != "" {
		s.Compress = p.Compress
	}
}

// Snapshot captures the effective settings as a profile, so a working
// invocation can be pinned with --save-profile and replayed later.
func Snapshot(s Settings) *Profile {
	binarize := s.Binarize

	return &Profile{
		From:     s.From,
		To:       s.To,
		Encoding: s.Encoding,
		Delimiter: s.Delimiter,
		InputColumns: Columns{
			Taxon:     s.InputTaxa,
			Character: s.InputChars,
			Value:     s.InputValues,
		},
		OutputColumns: Columns{
			Taxon:     s.OutputTaxa,
			Character: s.OutputChars,
			Value:     s.OutputValues,
		},
		SlugTaxa:      s.SlugTaxa,
		SlugChars:     s.SlugChars,
		Binarize:      &binarize,
		Ascertainment: s.Ascertainment,
		Polymorphism:  s.Polymorphism,
		Compress:      s.Compress,
	}
}

// LoadProfile reads a conversion profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &p, nil
}

// SaveProfile writes a conversion profile to path, creating parent
// directories as needed.
func SaveProfile(path string, p *Profile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}

	return nil
}
