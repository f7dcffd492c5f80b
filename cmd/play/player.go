package play

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gigurra/karaoke/cmd/clock"
	"github.com/gigurra/karaoke/cmd/render"
	"github.com/gigurra/karaoke/cmd/resolve"
	"github.com/gigurra/karaoke/cmd/screen"
	"github.com/gigurra/karaoke/cmd/timing"
)

// FrameWriter is the terminal the player draws on.
type FrameWriter interface {
	Size() (screen.Size, error)
	WriteFrame(text string, size screen.Size) error
}

// Options tune a Player. Zero values get defaults.
type Options struct {
	Interval        time.Duration // Sleep between frames
	ScrollIncrement int
	Styles          *render.Styles
	DiagnosticTTL   time.Duration

	// Reloads and Notices let other goroutines hand work to the frame loop
	// without touching its state. A song received on Reloads restarts playback.
	Reloads <-chan *timing.Song
	Notices <-chan string

	Now   func() time.Time
	Sleep func(time.Duration)
}

// Player runs the frame loop: clock, resolver, renderer, sleep, repeat.
// All of its state is owned by the goroutine calling Run.
type Player struct {
	song     *timing.Song
	out      FrameWriter
	opts     Options
	styles   render.Styles
	clock    *clock.Clock
	renderer *render.Renderer
	diags    *render.Diagnostics

	sizeReported bool
}

// NewPlayer creates a player for song drawing on out.
func NewPlayer(song *timing.Song, out FrameWriter, opts Options) *Player {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 120
	}
	if opts.ScrollIncrement <= 0 {
		opts.ScrollIncrement = 10
	}
	if opts.DiagnosticTTL <= 0 {
		opts.DiagnosticTTL = render.DefaultDiagnosticTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	styles := render.DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	p := &Player{
		out:    out,
		opts:   opts,
		styles: styles,
		clock:  clock.NewWithSource(opts.Now),
		diags:  render.NewDiagnostics(opts.DiagnosticTTL),
	}
	p.load(song)
	return p
}

// Song returns the song currently loaded.
func (p *Player) Song() *timing.Song {
	return p.song
}

// Renderer returns the renderer of the current run.
func (p *Player) Renderer() *render.Renderer {
	return p.renderer
}

// Load replaces the song. The next Run starts from the beginning of it.
func (p *Player) Load(song *timing.Song) {
	p.load(song)
}

func (p *Player) load(song *timing.Song) {
	p.song = song
	p.renderer = render.New(song, p.styles, p.opts.ScrollIncrement)
}

// Report queues a diagnostic shown on the next frames.
func (p *Player) Report(format string, args ...any) {
	p.diags.Add(p.opts.Now(), format, args...)
}

// Run plays the loaded song from the start until the elapsed time passes the
// end of the last sung syllable. ctx is checked once per full frame cycle;
// cancellation returns ctx.Err().
func (p *Player) Run(ctx context.Context) error {
	p.clock.Start()
	slog.Debug("playback started", "title", p.song.Metadata.Title, "lines", len(p.song.Lines), "end", p.song.End())

	for {
		p.drainMailbox()

		elapsed, err := p.clock.Elapsed()
		if err != nil {
			return err
		}
		seconds := elapsed.Seconds()
		if seconds > p.song.End() {
			break
		}

		if err := p.frame(seconds); err != nil {
			p.renderer.Finish()
			return fmt.Errorf("failed to write frame: %w", err)
		}

		p.opts.Sleep(p.opts.Interval)

		if err := ctx.Err(); err != nil {
			p.renderer.Finish()
			return err
		}
	}

	p.renderer.Finish()
	slog.Debug("playback finished", "title", p.song.Metadata.Title)
	return nil
}

// drainMailbox applies pending reloads and notices without blocking.
func (p *Player) drainMailbox() {
	for {
		select {
		case song, ok := <-p.opts.Reloads:
			if !ok {
				p.opts.Reloads = nil
				continue
			}
			slog.Info("timing file reloaded, restarting playback", "title", song.Metadata.Title)
			p.load(song)
			p.clock.Start()
			p.diags.Clear()
		case msg, ok := <-p.opts.Notices:
			if !ok {
				p.opts.Notices = nil
				continue
			}
			p.Report("%s", msg)
		default:
			return
		}
	}
}

func (p *Player) frame(elapsed float64) error {
	size, err := p.out.Size()
	if err != nil && !p.sizeReported {
		p.sizeReported = true
		slog.Debug("terminal size query failed", "error", err)
		p.Report("%v", err)
	}

	active := resolve.Lines(p.song, elapsed)
	text, changed := p.renderer.Render(active, size.Cols, size.Rows, p.diags.Current(p.opts.Now()))
	if !changed {
		return nil
	}
	return p.out.WriteFrame(text, size)
}

// Countdown shows a full screen countdown for d before playback, one frame per second.
func (p *Player) Countdown(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; remaining -= time.Second {
		size, _ := p.out.Size()
		if err := p.out.WriteFrame(p.countdownFrame(remaining, size), size); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
		p.opts.Sleep(min(time.Second, remaining))
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) countdownFrame(remaining time.Duration, size screen.Size) string {
	secs := int((remaining + time.Second - 1) / time.Second)
	lines := []string{
		"",
		strings.Repeat(" ", 8) + p.styles.Title.Render(p.song.Metadata.Title),
		"",
		strings.Repeat(" ", 8) + fmt.Sprintf("Starting in %d…", secs),
	}
	for len(lines) < size.Rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
