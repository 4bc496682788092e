package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phylio/phylio/codec"
	"github.com/phylio/phylio/format"
	"github.com/phylio/phylio/internal/textio"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file ...]",
	Short: "Report the detected format, delimiter, and compression of inputs",
	Long: `Detect runs the same sniffing the converter uses and prints what it
decided, one line per input. Reading stops at detection; the data is not
parsed into a matrix.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringP("encoding", "e", "", "input charset (default UTF-8 with BOM detection)")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		verboseEnabled = true
	}
	encoding, _ := cmd.Flags().GetString("encoding")

	paths := args
	if len(paths) == 0 {
		paths = []string{textio.StreamPath}
	}

	for _, path := range paths {
		if err := detectOne(cmd.OutOrStdout(), path, encoding); err != nil {
			return err
		}
	}

	return nil
}

// detectOne sniffs one input and writes its report line.
func detectOne(w io.Writer, path, encoding string) error {
	raw, err := textio.ReadRaw(path)
	if err != nil {
		return err
	}

	data, compression, err := textio.Unwrap(raw, textio.SourceName(path))
	if err != nil {
		return err
	}

	text, err := textio.DecodeText(data, encoding)
	if err != nil {
		return err
	}

	name := textio.SourceName(path)
	switch ft := format.Detect(text); ft {
	case format.TypeTabular:
		fmt.Fprintf(w, "%s: format=%s delimiter=%s compression=%s\n",
			name, ft, delimiterName(codec.DetectDelimiter(text)), compression)
	default:
		fmt.Fprintf(w, "%s: format=%s compression=%s\n", name, ft, compression)
	}

	return nil
}

// delimiterName names a delimiter rune for display.
func delimiterName(delimiter rune) string {
	switch delimiter {
	case '\t':
		return "tab"
	default:
		return "comma"
	}
}
