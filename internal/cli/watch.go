package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phylio/phylio/internal/textio"
)

// watchDebounce coalesces editor write bursts into one conversion.
const watchDebounce = 100 * time.Millisecond

// watchLoop converts once, then re-converts whenever the input file changes,
// until ctx is canceled. The output is only rewritten when the parsed matrix
// fingerprint moved, so saves that do not change the data leave the output
// alone.
func watchLoop(ctx context.Context, j *job) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that save by
	// rename would otherwise drop the watch after the first change.
	dir := filepath.Dir(j.input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	var (
		last     uint64
		haveLast bool
	)
	runOnce := func() {
		out, fingerprint, err := j.convert()
		if err != nil {
			log.Printf("%v", err)
			return
		}
		if haveLast && fingerprint == last {
			debugf("%s: data unchanged, skipping write", textio.SourceName(j.input))
			return
		}

		if err := textio.WriteResult(j.output, out, j.compress); err != nil {
			log.Printf("%v", err)
			return
		}
		last, haveLast = fingerprint, true
		log.Printf("%s -> %s", textio.SourceName(j.input), textio.ResultName(j.output))
	}

	runOnce()
	log.Printf("watching %s", j.input)

	target := filepath.Clean(j.input)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	var (
		pending   bool
		lastEvent time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = true
				lastEvent = time.Now()
			}

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= watchDebounce {
				pending = false
				runOnce()
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; keep going.
		}
	}
}

// signalContext returns a context canceled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}
