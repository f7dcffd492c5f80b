package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gigurra/karaoke/cmd/timing"
)

var ErrNoPath = errors.New("no timing file given")

const welcomeText = `
    Welcome to the CLI karaoke player!

    Please enter the path of the timing file you want to play.
    Supported formats: %s

    This program doesn't play music, start it yourself.
    Playback starts after a short countdown so you can sync the music with the lyrics.

`

// CheckPath reports why path cannot be played, or nil if it can.
func CheckPath(path string, loaders []timing.Loader) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	_, err = timing.LoaderFor(path, loaders)
	return err
}

// PromptPath asks for a timing file path on out until in yields a playable
// one. It gives up when in is exhausted or ctx is done.
func PromptPath(ctx context.Context, in io.Reader, out io.Writer, loaders []timing.Loader) (string, error) {
	_, _ = fmt.Fprintf(out, welcomeText, strings.Join(timing.SupportedExtensions(loaders), ", "))

	lines, stop := scanLines(in)
	defer stop()

	for {
		_, _ = fmt.Fprint(out, "\tPath: ")

		var read scannedLine
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return "", ctx.Err()
		case read = <-lines:
		}
		if !read.ok {
			if read.err != nil {
				return "", read.err
			}
			return "", ErrNoPath
		}

		path := strings.Trim(strings.TrimSpace(read.text), `"'`)
		if path == "" {
			continue
		}
		if err := CheckPath(path, loaders); err != nil {
			_, _ = fmt.Fprintf(out, "\t%s is an invalid/nonexistent path (%v). Please enter the path to the karaoke file.\n", path, err)
			continue
		}
		return path, nil
	}
}

type scannedLine struct {
	text string
	ok   bool
	err  error
}

// scanLines reads in line by line on its own goroutine so a blocked read
// never holds up cancellation. The reader is abandoned once stop is called.
func scanLines(in io.Reader) (<-chan scannedLine, func()) {
	lines := make(chan scannedLine)
	done := make(chan struct{})

	go func() {
		scanner := bufio.NewScanner(in)
		for {
			ok := scanner.Scan()
			read := scannedLine{text: scanner.Text(), ok: ok, err: scanner.Err()}
			select {
			case lines <- read:
			case <-done:
				return
			}
			if !ok {
				return
			}
		}
	}()

	return lines, func() { close(done) }
}
