package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylio/phylio/format"
)

func TestBatchOutputName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		to          format.Type
		compression format.CompressionType
		want        string
	}{
		{
			name:        "extension swap",
			input:       "dir/x.csv",
			to:          format.TypeNexus,
			compression: format.CompressionNone,
			want:        "x.nex",
		},
		{
			name:        "compression carried over",
			input:       "x.csv.gz",
			to:          format.TypeNexus,
			compression: format.CompressionGzip,
			want:        "x.nex.gz",
		},
		{
			name:        "no extension",
			input:       "data",
			to:          format.TypePhylip,
			compression: format.CompressionNone,
			want:        "data.phy",
		},
		{
			name:        "tab alias and zstd",
			input:       "a/b/data.tab.zst",
			to:          format.TypeTSV,
			compression: format.CompressionZstd,
			want:        "data.tsv.zst",
		},
		{
			name:        "lz4 added to plain input",
			input:       "x.nex",
			to:          format.TypeCSV,
			compression: format.CompressionLZ4,
			want:        "x.csv.lz4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, batchOutputName(tt.input, tt.to, tt.compression))
		})
	}
}

func TestBatchJob(t *testing.T) {
	t.Run("auto compression mirrors the input", func(t *testing.T) {
		s := testSettings()
		s.To = "nexus"

		j, err := batchJob(s, "in/x.csv.gz", "out", format.TypeNexus)
		require.NoError(t, err)
		require.Equal(t, filepath.Join("out", "x.nex.gz"), j.output)
		require.Equal(t, format.CompressionGzip, j.compress)
	})

	t.Run("explicit none strips the container", func(t *testing.T) {
		s := testSettings()
		s.To = "nexus"
		s.Compress = "none"

		j, err := batchJob(s, "in/x.csv.gz", "out", format.TypeNexus)
		require.NoError(t, err)
		require.Equal(t, filepath.Join("out", "x.nex"), j.output)
		require.Equal(t, format.CompressionNone, j.compress)
	})
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, os.WriteFile(first, []byte(pipelineCSV), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(pipelineCSV), 0o644))

	s := testSettings()
	s.To = "phylip"

	require.NoError(t, runBatch(s, []string{first, second}, outDir))

	for _, name := range []string{"first.phy", "second.phy"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		require.Equal(t, pipelinePhylip, string(data))
	}
}

func TestRunBatch_Errors(t *testing.T) {
	t.Run("auto to rejected", func(t *testing.T) {
		err := runBatch(testSettings(), []string{"a.csv", "b.csv"}, t.TempDir())
		require.ErrorContains(t, err, "explicit --to")
	})

	t.Run("stdout output rejected", func(t *testing.T) {
		s := testSettings()
		s.To = "nexus"

		err := runBatch(s, []string{"a.csv", "b.csv"}, "-")
		require.ErrorContains(t, err, "output directory")
	})

	t.Run("stdin input rejected", func(t *testing.T) {
		s := testSettings()
		s.To = "nexus"

		err := runBatch(s, []string{"a.csv", "-"}, t.TempDir())
		require.ErrorContains(t, err, "stdin")
	})

	t.Run("output collision rejected", func(t *testing.T) {
		s := testSettings()
		s.To = "nexus"

		err := runBatch(s, []string{"a/x.csv", "b/x.csv"}, t.TempDir())
		require.ErrorContains(t, err, "both write")
	})

	t.Run("failures are counted but isolated", func(t *testing.T) {
		dir := t.TempDir()
		outDir := filepath.Join(dir, "out")

		good := filepath.Join(dir, "good.csv")
		bad := filepath.Join(dir, "bad.csv")
		require.NoError(t, os.WriteFile(good, []byte(pipelineCSV), 0o644))
		require.NoError(t, os.WriteFile(bad, nil, 0o644))

		s := testSettings()
		s.To = "phylip"

		err := runBatch(s, []string{good, bad}, outDir)
		require.ErrorContains(t, err, "1 of 2 conversions failed")

		// The good input still converted.
		data, err := os.ReadFile(filepath.Join(outDir, "good.phy"))
		require.NoError(t, err)
		require.Equal(t, pipelinePhylip, string(data))
	})
}
