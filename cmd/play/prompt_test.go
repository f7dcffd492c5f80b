package play

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/karaoke/cmd/timing"
)

func TestPromptPath_RepromptsUntilValid(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "song.json")
	if err := os.WriteFile(good, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	wrongExt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(wrongExt, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{
		"",
		filepath.Join(dir, "missing.json"),
		wrongExt,
		dir,
		`"` + good + `"`,
	}, "\n") + "\n"

	var out bytes.Buffer
	path, err := PromptPath(context.Background(), strings.NewReader(input), &out, timing.DefaultLoaders)
	if err != nil {
		t.Fatalf("PromptPath() returned error: %v", err)
	}
	if path != good {
		t.Errorf("PromptPath() = %q, want %q", path, good)
	}

	output := out.String()
	if !strings.Contains(output, "Welcome to the CLI karaoke player!") {
		t.Errorf("welcome text missing from output")
	}
	if got := strings.Count(output, "is an invalid/nonexistent path"); got != 3 {
		t.Errorf("got %d invalid path messages, want 3:\n%s", got, output)
	}
}

func TestPromptPath_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := PromptPath(context.Background(), strings.NewReader("nope.json\n"), &out, timing.DefaultLoaders)
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("PromptPath() error = %v, want ErrNoPath", err)
	}
}

func TestPromptPath_CancelWhileReading(t *testing.T) {
	in, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := PromptPath(ctx, in, io.Discard, timing.DefaultLoaders)
		errCh <- err
	}()

	// Nothing is ever written to the pipe, so the read stays blocked.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("PromptPath() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PromptPath() did not return after cancellation")
	}
}

func TestPromptPath_CancelledBeforeInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in, w := io.Pipe()
	defer func() { _ = w.Close() }()

	var out bytes.Buffer
	_, err := PromptPath(ctx, in, &out, timing.DefaultLoaders)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PromptPath() error = %v, want context.Canceled", err)
	}
}

func TestCheckPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "song.json")
	if err := os.WriteFile(good, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CheckPath(good, timing.DefaultLoaders); err != nil {
		t.Errorf("CheckPath(good) = %v", err)
	}
	if err := CheckPath(filepath.Join(dir, "x.json"), timing.DefaultLoaders); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CheckPath(missing) = %v, want os.ErrNotExist", err)
	}
	if err := CheckPath(dir, timing.DefaultLoaders); err == nil {
		t.Errorf("CheckPath(dir) should fail")
	}
}
