package cli

import (
	"fmt"
	"strings"

	"github.com/phylio/phylio"
	"github.com/phylio/phylio/codec"
	"github.com/phylio/phylio/format"
	"github.com/phylio/phylio/internal/config"
	"github.com/phylio/phylio/internal/textio"
	"github.com/phylio/phylio/phylo"
	"github.com/phylio/phylio/slug"
)

// job carries everything one conversion needs: where the text comes from,
// how to parse it, which transforms run, and how to render and store the
// result. Batch mode builds one job per input, so nothing is shared between
// goroutines.
type job struct {
	input    string
	output   string
	from     format.Type
	to       format.Type
	encoding string
	compress format.CompressionType

	decodeOpts []codec.TabularDecoderOption

	slugTaxa  slug.Level
	slugChars slug.Level
	binarize  bool
	ascertain phylo.AscertainmentMode

	tabularOpts []codec.TabularEncoderOption
	nexusOpts   []codec.NexusEncoderOption
	phylipOpts  []codec.PhylipEncoderOption
}

// newJob resolves one input/output pair against the effective settings.
//
// The output format falls back to the output path's extension when --to is
// auto; there is no reliable content to sniff on the writing side, so a
// bare "-" output with an auto format is an error.
func newJob(s config.Settings, input, output string) (*job, error) {
	from, err := format.ParseType(s.From)
	if err != nil {
		return nil, err
	}

	to, err := format.ParseType(s.To)
	if err != nil {
		return nil, err
	}
	if to == format.TypeAuto {
		if to = format.FromPath(output); to == format.TypeAuto {
			return nil, fmt.Errorf("cannot infer the output format for %s, pass --to", textio.ResultName(output))
		}
	}

	compression, err := resolveCompression(s.Compress, output)
	if err != nil {
		return nil, err
	}

	j := &job{
		input:    input,
		output:   output,
		from:     from,
		to:       to,
		encoding: s.Encoding,
		compress: compression,
		binarize: s.Binarize,
	}

	delimiter, err := parseDelimiter(s.Delimiter)
	if err != nil {
		return nil, err
	}
	if delimiter != 0 {
		j.decodeOpts = append(j.decodeOpts, codec.WithInputDelimiter(delimiter))
	}
	j.decodeOpts = append(j.decodeOpts, codec.WithInputColumns(s.InputTaxa, s.InputChars, s.InputValues))

	if j.slugTaxa, err = slug.ParseLevel(s.SlugTaxa); err != nil {
		return nil, err
	}
	if j.slugChars, err = slug.ParseLevel(s.SlugChars); err != nil {
		return nil, err
	}
	if j.ascertain, err = phylo.ParseAscertainmentMode(s.Ascertainment); err != nil {
		return nil, err
	}

	polymorphism, err := codec.ParsePolymorphismMode(s.Polymorphism)
	if err != nil {
		return nil, err
	}

	j.tabularOpts = append(j.tabularOpts, codec.WithOutputColumns(s.OutputTaxa, s.OutputChars, s.OutputValues))
	j.nexusOpts = append(j.nexusOpts, codec.WithNexusPolymorphism(polymorphism))
	j.phylipOpts = append(j.phylipOpts, codec.WithPhylipPolymorphism(polymorphism))

	return j, nil
}

// run executes the conversion end to end.
func (j *job) run() error {
	out, _, err := j.convert()
	if err != nil {
		return err
	}

	return textio.WriteResult(j.output, out, j.compress)
}

// convert produces the rendered output and the parsed matrix fingerprint
// without writing anything. Watch mode uses the fingerprint to skip writes
// when a save did not change the data.
func (j *job) convert() (string, uint64, error) {
	text, err := textio.ReadSource(j.input, j.encoding)
	if err != nil {
		return "", 0, err
	}

	m, err := j.parse(text)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", textio.SourceName(j.input), err)
	}

	fingerprint := m.Fingerprint()

	if m, err = j.transform(m); err != nil {
		return "", 0, fmt.Errorf("%s: %w", textio.SourceName(j.input), err)
	}

	out, err := j.render(m)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", textio.SourceName(j.input), err)
	}

	debugf("%s: %d taxa, %d characters -> %s (%s)",
		textio.SourceName(j.input), m.TaxonCount(), m.CharacterCount(),
		textio.ResultName(j.output), j.to)

	return out, fingerprint, nil
}

// parse decodes source text into a matrix, sniffing the format when the
// input format is auto.
func (j *job) parse(text string) (*phylo.Matrix, error) {
	from := j.from
	if from == format.TypeAuto {
		from = format.Detect(text)
		debugf("%s: detected %s input", textio.SourceName(j.input), from)
	}

	switch from {
	case format.TypeTabular:
		return phylio.ParseTabular(text, j.decodeOpts...)
	case format.TypeCSV:
		return phylio.ParseTabular(text, j.delimitedOpts(',')...)
	case format.TypeTSV:
		return phylio.ParseTabular(text, j.delimitedOpts('\t')...)
	case format.TypeNexus:
		return phylio.ParseNexus(text)
	case format.TypePhylip:
		return phylio.ParsePhylip(text)
	default:
		return nil, fmt.Errorf("invalid input format: %s", from)
	}
}

// delimitedOpts prepends the format-implied delimiter, so an explicit
// --delimiter flag still wins.
func (j *job) delimitedOpts(delimiter rune) []codec.TabularDecoderOption {
	opts := make([]codec.TabularDecoderOption, 0, len(j.decodeOpts)+1)
	opts = append(opts, codec.WithInputDelimiter(delimiter))

	return append(opts, j.decodeOpts...)
}

// transform applies label slugging and binarization, in that order.
func (j *job) transform(m *phylo.Matrix) (*phylo.Matrix, error) {
	var err error

	if names := slugRename(m.Taxa(), j.slugTaxa); len(names) > 0 {
		if m, err = m.RenameTaxa(names); err != nil {
			return nil, fmt.Errorf("slugging taxa: %w", err)
		}
	}

	if names := slugRename(m.Characters(), j.slugChars); len(names) > 0 {
		if m, err = m.RenameCharacters(names); err != nil {
			return nil, fmt.Errorf("slugging characters: %w", err)
		}
	}

	if j.binarize {
		m = m.Binarize(j.ascertain)
	}

	return m, nil
}

// render encodes the matrix in the job's output format.
func (j *job) render(m *phylo.Matrix) (string, error) {
	switch j.to {
	case format.TypeTabular, format.TypeCSV:
		return phylio.RenderTabular(m, j.tabularOpts...)
	case format.TypeTSV:
		opts := make([]codec.TabularEncoderOption, 0, len(j.tabularOpts)+1)
		opts = append(opts, codec.WithOutputDelimiter('\t'))

		return phylio.RenderTabular(m, append(opts, j.tabularOpts...)...)
	case format.TypeNexus:
		return phylio.RenderNexus(m, j.nexusOpts...)
	case format.TypePhylip:
		return phylio.RenderPhylip(m, j.phylipOpts...)
	default:
		return "", fmt.Errorf("invalid output format: %s", j.to)
	}
}

// slugRename maps labels onto their slugged unique IDs, dropping identity
// entries so clean labels skip the rename path. Labels arrive sorted, which
// keeps collision suffixes deterministic.
func slugRename(labels []string, level slug.Level) map[string]string {
	if level == slug.LevelNone {
		return nil
	}

	ids := slug.UniqueIDs(labels, level)

	names := make(map[string]string, len(labels))
	for i, label := range labels {
		if ids[i] != label {
			names[label] = ids[i]
		}
	}

	return names
}

// parseDelimiter converts the --delimiter value into the decoder's rune
// form, with 0 meaning sniff per input.
func parseDelimiter(name string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return 0, nil
	case "comma", ",":
		return ',', nil
	case "tab", "\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("invalid delimiter: %q", name)
	}
}

// resolveCompression maps the --compress value onto a compression type,
// sniffing the output extension in auto mode.
func resolveCompression(name, output string) (format.CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return format.CompressionFromPath(output), nil
	default:
		return format.ParseCompression(name)
	}
}
