package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phylio/phylio/internal/config"
	"github.com/phylio/phylio/internal/textio"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert character data between formats",
	Long: `Convert reads character data in one format and writes it in another.

Formats are detected from the input content and the output extension, so
the common case is just:

  phylio convert -i cognates.csv -o cognates.nex

Several -i inputs switch on batch mode, where -o names a directory and each
input converts independently. With --watch the input is re-converted on
every change until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()

	f.StringSliceP("input", "i", []string{textio.StreamPath}, "input file(s), - for stdin")
	f.StringP("output", "o", textio.StreamPath, "output file, - for stdout, directory in batch mode")
	f.StringP("from", "f", "auto", "input format (auto|tabular|csv|tsv|nexus|phylip)")
	f.StringP("to", "t", "auto", "output format, auto resolves from the output extension")
	f.StringP("encoding", "e", "", "input charset (default UTF-8 with BOM detection)")
	f.String("delimiter", "", "input cell delimiter (comma|tab, default sniffed)")
	f.String("i-taxa", "", "input column holding taxa")
	f.String("i-char", "", "input column holding characters")
	f.String("i-value", "", "input column holding values")
	f.String("o-taxa", "Taxon", "output column holding taxa")
	f.String("o-char", "Character", "output column holding characters")
	f.String("o-value", "Value", "output column holding values")
	f.String("slug-taxa", "simple", "taxon label cleanup (none|simple|full)")
	f.String("slug-chars", "simple", "character label cleanup (none|simple|full)")
	f.Bool("binarize", false, "expand multistate characters into presence/absence characters")
	f.String("ascertainment", "auto", "ascertainment correction when binarizing (auto|on|off)")
	f.String("polymorphism", "first", "polymorphic cell rendering (first|multistate)")
	f.String("compress", "auto", "output compression (auto|none|gzip|zstd|lz4)")
	f.String("profile", "", "conversion profile to apply (TOML)")
	f.String("save-profile", "", "write the effective settings to a profile (TOML)")
	f.Bool("watch", false, "re-convert whenever the input file changes")
	f.Int("workers", 4, "parallel conversions in batch mode")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	inputs, _ := cmd.Flags().GetStringSlice("input")
	output, _ := cmd.Flags().GetString("output")

	if save, _ := cmd.Flags().GetString("save-profile"); save != "" {
		if err := config.SaveProfile(save, config.Snapshot(s)); err != nil {
			return err
		}
		debugf("saved profile %s", save)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if len(inputs) != 1 || inputs[0] == textio.StreamPath {
			return fmt.Errorf("--watch needs exactly one file input")
		}

		j, err := newJob(s, inputs[0], output)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return watchLoop(ctx, j)
	}

	if len(inputs) > 1 {
		return runBatch(s, inputs, output)
	}

	j, err := newJob(s, inputs[0], output)
	if err != nil {
		return err
	}

	return j.run()
}

// resolveSettings merges config file, environment, profile, and explicit
// flags, in rising priority. Only flags the user actually set override the
// profile, so a profile can pin values the defaults would mask.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	s := config.Load()

	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		p, err := config.LoadProfile(path)
		if err != nil {
			return s, err
		}
		p.Apply(&s)
		debugf("applied profile %s", path)
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	setString("from", &s.From)
	setString("to", &s.To)
	setString("encoding", &s.Encoding)
	setString("delimiter", &s.Delimiter)
	setString("i-taxa", &s.InputTaxa)
	setString("i-char", &s.InputChars)
	setString("i-value", &s.InputValues)
	setString("o-taxa", &s.OutputTaxa)
	setString("o-char", &s.OutputChars)
	setString("o-value", &s.OutputValues)
	setString("slug-taxa", &s.SlugTaxa)
	setString("slug-chars", &s.SlugChars)
	setString("ascertainment", &s.Ascertainment)
	setString("polymorphism", &s.Polymorphism)
	setString("compress", &s.Compress)

	if flags.Changed("binarize") {
		s.Binarize, _ = flags.GetBool("binarize")
	}
	if flags.Changed("workers") {
		s.Workers, _ = flags.GetInt("workers")
	}
	if v, _ := flags.GetBool("verbose"); v {
		s.Verbose = true
	}

	verboseEnabled = s.Verbose

	return s, nil
}
