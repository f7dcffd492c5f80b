package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gigurra/karaoke/cmd/render"
	"github.com/gigurra/karaoke/cmd/screen"
	"github.com/gigurra/karaoke/cmd/timing"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

func (f *fakeTime) Sleep(d time.Duration) {
	f.now = f.now.Add(d)
}

type recorder struct {
	size    screen.Size
	sizeErr error
	frames  []string
}

func (r *recorder) Size() (screen.Size, error) {
	return r.size, r.sizeErr
}

func (r *recorder) WriteFrame(text string, size screen.Size) error {
	r.frames = append(r.frames, ansi.Strip(text))
	return nil
}

func heyThere() *timing.Song {
	return &timing.Song{
		Metadata: timing.Metadata{Title: "Hey"},
		Lines: []timing.Line{
			{Syllables: []string{"Hey ", "there"}, Offsets: []float64{0, 1, 2}, Start: 0},
		},
	}
}

func newTestPlayer(song *timing.Song, out *recorder, opts Options) (*Player, *fakeTime) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	opts.Interval = 250 * time.Millisecond
	opts.Now = ft.Now
	opts.Sleep = ft.Sleep
	return NewPlayer(song, out, opts), ft
}

func TestPlayer_RunPlaysUntilEnd(t *testing.T) {
	out := &recorder{size: screen.Size{Cols: 80, Rows: 24}}
	player, ft := newTestPlayer(heyThere(), out, Options{})

	if err := player.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	// Frames only get written when something changes: first syllable,
	// second syllable, then the line ending at exactly 2s.
	if len(out.frames) != 3 {
		t.Fatalf("wrote %d frames, want 3:\n%s", len(out.frames), strings.Join(out.frames, "\n---\n"))
	}
	for i, frame := range out.frames {
		if !strings.Contains(frame, "Hey there") {
			t.Errorf("frame %d does not contain the lyrics:\n%s", i, frame)
		}
	}

	if player.Renderer().Phase() != render.PhaseDone {
		t.Errorf("renderer phase = %v, want done", player.Renderer().Phase())
	}
	if elapsed := ft.now.Sub(time.Unix(1000, 0)); elapsed != 2250*time.Millisecond {
		t.Errorf("playback took %v, want 2.25s (first check past the end)", elapsed)
	}
}

func TestPlayer_CancelCompletesOneCycle(t *testing.T) {
	out := &recorder{size: screen.Size{Cols: 80, Rows: 24}}
	player, ft := newTestPlayer(heyThere(), out, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := player.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(out.frames) != 1 {
		t.Errorf("wrote %d frames, want exactly one full cycle", len(out.frames))
	}
	if ft.now.Sub(time.Unix(1000, 0)) != 250*time.Millisecond {
		t.Errorf("cancelled run should sleep exactly once")
	}
	if player.Renderer().Phase() != render.PhaseDone {
		t.Errorf("renderer phase = %v, want done", player.Renderer().Phase())
	}
}

func TestPlayer_ReloadRestartsPlayback(t *testing.T) {
	reloads := make(chan *timing.Song, 1)
	out := &recorder{size: screen.Size{Cols: 80, Rows: 24}}
	player, _ := newTestPlayer(heyThere(), out, Options{Reloads: reloads})

	updated := &timing.Song{
		Metadata: timing.Metadata{Title: "Hey (edited)"},
		Lines: []timing.Line{
			{Syllables: []string{"Hello ", "there"}, Offsets: []float64{0, 0.5, 1}, Start: 0},
		},
	}
	reloads <- updated

	if err := player.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if player.Song() != updated {
		t.Errorf("player did not switch to the reloaded song")
	}
	if !strings.Contains(out.frames[0], "Hello there") {
		t.Errorf("first frame should show the reloaded song:\n%s", out.frames[0])
	}
}

func TestPlayer_NoticesAreShown(t *testing.T) {
	notices := make(chan string, 1)
	notices <- "reload failed: boom"
	out := &recorder{size: screen.Size{Cols: 80, Rows: 24}}
	player, _ := newTestPlayer(heyThere(), out, Options{Notices: notices})

	if err := player.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.HasPrefix(out.frames[0], "ERROR: reload failed: boom") {
		t.Errorf("first frame should start with the notice:\n%s", out.frames[0])
	}
}

func TestPlayer_TerminalFallbackIsReported(t *testing.T) {
	out := &recorder{
		size:    screen.Size{Cols: 80, Rows: 24},
		sizeErr: fmt.Errorf("%w: not a tty", screen.ErrTerminalUnavailable),
	}
	player, _ := newTestPlayer(heyThere(), out, Options{})

	if err := player.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(out.frames[0], "ERROR: terminal unavailable: not a tty") {
		t.Errorf("first frame should report the fallback size:\n%s", out.frames[0])
	}
	if !strings.Contains(out.frames[0], "Hey there") {
		t.Errorf("rendering should continue with the fallback size:\n%s", out.frames[0])
	}
}

func TestPlayer_Countdown(t *testing.T) {
	out := &recorder{size: screen.Size{Cols: 80, Rows: 10}}
	player, ft := newTestPlayer(heyThere(), out, Options{})

	if err := player.Countdown(context.Background(), 3*time.Second); err != nil {
		t.Fatalf("Countdown() returned error: %v", err)
	}
	if len(out.frames) != 3 {
		t.Fatalf("wrote %d countdown frames, want 3", len(out.frames))
	}
	for i, want := range []string{"Starting in 3…", "Starting in 2…", "Starting in 1…"} {
		if !strings.Contains(out.frames[i], want) {
			t.Errorf("frame %d = %q, want it to contain %q", i, out.frames[i], want)
		}
	}
	if ft.now.Sub(time.Unix(1000, 0)) != 3*time.Second {
		t.Errorf("countdown slept %v, want 3s", ft.now.Sub(time.Unix(1000, 0)))
	}

	out.frames = nil
	if err := player.Countdown(context.Background(), 0); err != nil || len(out.frames) != 0 {
		t.Errorf("zero countdown should do nothing, got %d frames, err %v", len(out.frames), err)
	}
}

func TestPlayLoop_FollowWaitsForReload(t *testing.T) {
	reloads := make(chan *timing.Song, 1)
	out := &recorder{size: screen.Size{Cols: 80, Rows: 24}}
	player, _ := newTestPlayer(heyThere(), out, Options{Reloads: reloads})

	ctx, cancel := context.WithCancel(context.Background())
	second := heyThere()
	second.Metadata.Title = "second"

	done := make(chan error, 1)
	go func() {
		done <- playLoop(ctx, player, 0, true)
	}()

	reloads <- second
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("playLoop() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("playLoop() did not return after cancel")
	}
}
