package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phylio/phylio/format"
	"github.com/phylio/phylio/internal/config"
	"github.com/phylio/phylio/internal/textio"
)

// runBatch converts every input on a bounded worker pool. Jobs never share
// state; a failed input is reported and the rest keep going.
func runBatch(s config.Settings, inputs []string, dir string) error {
	to, err := format.ParseType(s.To)
	if err != nil {
		return err
	}
	if to == format.TypeAuto {
		return fmt.Errorf("batch conversion needs an explicit --to format")
	}
	if dir == textio.StreamPath {
		return fmt.Errorf("batch conversion needs an output directory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	// Build all jobs up front so name collisions fail before any output
	// is written.
	jobs := make([]*job, len(inputs))
	claimed := make(map[string]string, len(inputs))
	for i, input := range inputs {
		if input == textio.StreamPath {
			return fmt.Errorf("stdin cannot appear in a batch conversion")
		}

		j, err := batchJob(s, input, dir, to)
		if err != nil {
			return err
		}
		if prev, ok := claimed[j.output]; ok {
			return fmt.Errorf("inputs %s and %s both write %s", prev, input, j.output)
		}
		claimed[j.output] = input
		jobs[i] = j
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j *job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			errs[i] = j.run()
		}(i, j)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			log.Printf("%v", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(jobs))
	}

	return nil
}

// batchJob builds the job for one batch input. The output lands in dir
// under the input's base name with the target extension; auto compression
// mirrors the input's container, so "x.csv.gz" becomes "x.nex.gz".
func batchJob(s config.Settings, input, dir string, to format.Type) (*job, error) {
	compression := format.CompressionFromPath(input)
	if mode := strings.ToLower(strings.TrimSpace(s.Compress)); mode != "" && mode != "auto" {
		var err error
		if compression, err = format.ParseCompression(mode); err != nil {
			return nil, err
		}
	}

	return newJob(s, input, filepath.Join(dir, batchOutputName(input, to, compression)))
}

// batchOutputName swaps the input's compression and format extensions for
// the output's.
func batchOutputName(input string, to format.Type, compression format.CompressionType) string {
	base := filepath.Base(input)
	if format.CompressionFromPath(base) != format.CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return base + formatExt(to) + compressionExt(compression)
}

// formatExt returns the conventional extension for a render format.
func formatExt(t format.Type) string {
	switch t {
	case format.TypeTSV:
		return ".tsv"
	case format.TypeNexus:
		return ".nex"
	case format.TypePhylip:
		return ".phy"
	default:
		return ".csv"
	}
}

// compressionExt returns the extension a compression container adds, empty
// for none.
func compressionExt(c format.CompressionType) string {
	switch c {
	case format.CompressionGzip:
		return ".gz"
	case format.CompressionZstd:
		return ".zst"
	case format.CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}
