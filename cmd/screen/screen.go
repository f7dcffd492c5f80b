// Package screen is the terminal side of the player: it queries the terminal
// size and writes whole frames at the top-left corner without scrolling.
package screen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

var ErrTerminalUnavailable = errors.New("terminal unavailable")

const (
	// DefaultColumns and DefaultRows are used when the size cannot be queried
	DefaultColumns = 80
	DefaultRows    = 24
)

const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[2J"
	cursorHome     = "\x1b[H"
	clearToEOL     = "\x1b[K"
)

// Size is a terminal size in cells.
type Size struct {
	Cols int
	Rows int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// Terminal writes frames to an output file descriptor.
type Terminal struct {
	out      io.Writer
	fd       int
	fallback Size
	getSize  func(fd int) (int, int, error)
}

// New creates a terminal writing to out. fallback is used when the size of
// out cannot be queried (not a TTY, redirected output, ...).
func New(out *os.File, fallback Size) *Terminal {
	if fallback.Cols <= 0 {
		fallback.Cols = DefaultColumns
	}
	if fallback.Rows <= 0 {
		fallback.Rows = DefaultRows
	}
	return &Terminal{
		out:      out,
		fd:       int(out.Fd()),
		fallback: fallback,
		getSize:  term.GetSize,
	}
}

// Size returns the current terminal size. When the query fails the fallback
// size is returned together with an error wrapping ErrTerminalUnavailable, so
// callers can keep rendering and report the problem.
func (t *Terminal) Size() (Size, error) {
	cols, rows, err := t.getSize(t.fd)
	if err != nil {
		return t.fallback, fmt.Errorf("%w: %v (using %s)", ErrTerminalUnavailable, err, t.fallback)
	}
	if cols <= 0 || rows <= 0 {
		return t.fallback, fmt.Errorf("%w: reported size %dx%d (using %s)", ErrTerminalUnavailable, cols, rows, t.fallback)
	}
	return Size{Cols: cols, Rows: rows}, nil
}

// Enter switches to the alternate screen and hides the cursor, keeping frames
// out of the scrollback.
func (t *Terminal) Enter() error {
	_, err := io.WriteString(t.out, enterAltScreen+hideCursor+clearScreen+cursorHome)
	return err
}

// Leave restores the normal screen and cursor.
func (t *Terminal) Leave() error {
	_, err := io.WriteString(t.out, showCursor+leaveAltScreen)
	return err
}

// WriteFrame fits text to size and draws it over the previous frame in a single write.
func (t *Terminal) WriteFrame(text string, size Size) error {
	lines := Fit(text, size)

	var sb strings.Builder
	sb.WriteString(cursorHome)
	for i, line := range lines {
		sb.WriteString(line)
		sb.WriteString(clearToEOL)
		if i < len(lines)-1 {
			sb.WriteString("\r\n")
		}
	}

	_, err := io.WriteString(t.out, sb.String())
	return err
}

// Fit clips every line of text to size.Cols display cells (escape sequences
// are kept and not counted) and pads with empty lines or truncates so that
// exactly size.Rows lines remain.
func Fit(text string, size Size) []string {
	rows := max(size.Rows, 0)
	cols := max(size.Cols, 0)

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > cols {
			lines[i] = ansi.Truncate(line, cols, "")
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}
