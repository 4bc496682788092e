package codec

import (
	"encoding/csv"

	"github.com/phylio/phylio/internal/options"
	"github.com/phylio/phylio/internal/pool"
	"github.com/phylio/phylio/phylo"
)

// TabularEncoder renders a matrix as delimiter-separated long-table triples.
//
// The output carries a header row followed by one row per observed value:
// characters in sorted order, taxa sorted within a character, values sorted
// within a cell. Cells with no observation produce no row, so a matrix with
// missing data loses that information in tabular form.
//
// Note: TabularEncoder instances are stateless and safe for concurrent use.
type TabularEncoder struct {
	*TabularEncoderConfig
}

// NewTabularEncoder creates a TabularEncoder with the given options.
//
// Returns:
//   - *TabularEncoder: New encoder instance
//   - error: Configuration error if invalid options provided
func NewTabularEncoder(opts ...TabularEncoderOption) (*TabularEncoder, error) {
	config := NewTabularEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &TabularEncoder{TabularEncoderConfig: config}, nil
}

// Encode renders m as delimited triple text. An empty matrix renders as the
// header row alone.
func (e *TabularEncoder) Encode(m *phylo.Matrix) (string, error) {
	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	writer := csv.NewWriter(buf)
	writer.Comma = e.delimiter

	if err := writer.Write([]string{e.taxonColumn, e.characterColumn, e.valueColumn}); err != nil {
		return "", err
	}
	for _, triple := range m.Triples() {
		if err := writer.Write([]string{triple.Taxon, triple.Character, triple.Value}); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
