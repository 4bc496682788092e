package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phylio/phylio/codec"
	"github.com/phylio/phylio/format"
	"github.com/phylio/phylio/internal/textio"
	"github.com/phylio/phylio/phylo"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize a character matrix",
	Long: `Stats parses the input into a matrix and prints its shape: taxon and
character counts, the largest state alphabet, the symbol legend a
fixed-width render would declare, and the content fingerprint that watch
mode uses to detect real changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringP("from", "f", "auto", "input format (auto|tabular|csv|tsv|nexus|phylip)")
	statsCmd.Flags().StringP("encoding", "e", "", "input charset (default UTF-8 with BOM detection)")
	statsCmd.Flags().String("delimiter", "", "input cell delimiter (comma|tab, default sniffed)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		verboseEnabled = true
	}

	path := textio.StreamPath
	if len(args) == 1 {
		path = args[0]
	}

	encoding, _ := cmd.Flags().GetString("encoding")
	text, err := textio.ReadSource(path, encoding)
	if err != nil {
		return err
	}

	fromName, _ := cmd.Flags().GetString("from")
	from, err := format.ParseType(fromName)
	if err != nil {
		return err
	}

	j := &job{input: path, from: from}
	if name, _ := cmd.Flags().GetString("delimiter"); name != "" {
		delimiter, err := parseDelimiter(name)
		if err != nil {
			return err
		}
		if delimiter != 0 {
			j.decodeOpts = append(j.decodeOpts, codec.WithInputDelimiter(delimiter))
		}
	}

	m, err := j.parse(text)
	if err != nil {
		return err
	}

	printStats(cmd.OutOrStdout(), m)

	return nil
}

// printStats writes the matrix summary.
func printStats(w io.Writer, m *phylo.Matrix) {
	missing := 0
	for _, taxon := range m.Taxa() {
		for _, character := range m.Characters() {
			if len(m.ObservationsOf(taxon, character)) == 0 {
				missing++
			}
		}
	}

	fmt.Fprintf(w, "taxa:         %d\n", m.TaxonCount())
	fmt.Fprintf(w, "characters:   %d\n", m.CharacterCount())
	fmt.Fprintf(w, "cardinality:  %d\n", m.Cardinality())
	fmt.Fprintf(w, "missing:      %d\n", missing)
	fmt.Fprintf(w, "binary:       %t\n", m.IsBinary())
	fmt.Fprintf(w, "genetic:      %t\n", m.IsGenetic())
	fmt.Fprintf(w, "symbols:      %s\n", codec.Legend(m))
	if charsets := m.Charsets(); len(charsets) > 0 {
		fmt.Fprintf(w, "charsets:     %d\n", len(charsets))
	}
	fmt.Fprintf(w, "fingerprint:  %016x\n", m.Fingerprint())
}
