package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitForFile polls until the file at path holds want or the deadline
// passes. fsnotify delivery and the debounce window make exact timing
// unpredictable, so assertions poll instead of sleeping a fixed amount.
func waitForFile(t *testing.T, path, want string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && string(data) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	data, _ := os.ReadFile(path)
	t.Fatalf("output never reached expected content, last read:\n%s", data)
}

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	output := filepath.Join(dir, "data.phy")
	require.NoError(t, os.WriteFile(input, []byte(pipelineCSV), 0o644))

	j, err := newJob(testSettings(), input, output)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, j)
	}()

	// The initial conversion runs before any event arrives.
	waitForFile(t, output, pipelinePhylip)

	// A data change is picked up and re-converted.
	changed := "Language_ID,Feature_ID,Value\n" +
		"A,f1,0\n" +
		"A,f2,1\n" +
		"B,f1,0\n" +
		"B,f2,?\n"
	require.NoError(t, os.WriteFile(input, []byte(changed), 0o644))

	waitForFile(t, output, "2 2\nA    00\nB    0?\n")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancellation")
	}
}
