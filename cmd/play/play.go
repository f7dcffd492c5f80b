package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/common/config"
	"github.com/gigurra/karaoke/cmd/render"
	"github.com/gigurra/karaoke/cmd/screen"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Path      string  `pos:"true" optional:"true" help:"Timing file to play. Shows a picker or prompts when omitted."`
	Countdown int     `short:"c" optional:"true" help:"Seconds to count down before playback (-1 uses the config value)." default:"-1"`
	Fps       float64 `short:"r" optional:"true" help:"Frames per second (0 uses the config value)." default:"0"`
	Scroll    int     `short:"s" optional:"true" help:"Lines to scroll at a time (0 uses the config value)." default:"0"`
	Follow    bool    `short:"f" optional:"true" help:"Restart playback whenever the timing file changes."`
	LogLevel  string  `optional:"true" help:"Log level." default:"warn" alts:"debug,info,warn,error"`
	LogFile   string  `optional:"true" help:"Write logs to this file instead of stderr."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "play [file]",
		Short: "Play time-synchronized lyrics in the terminal",
		Long: `Display the lyrics of a karaoke timing file, highlighting the syllable being sung.

No audio is played: start the music yourself during the countdown.
Press Ctrl+C to stop.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			closeLog, err := common.ConfigureLogging(params.LogLevel, params.LogFile)
			common.ExitOnError("play", err)
			defer closeLog()

			cfg, err := config.Load()
			common.ExitOnError("play", err)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = Run(ctx, params, cfg, os.Stdin, os.Stdout)
			if errors.Is(err, context.Canceled) || errors.Is(err, ErrPickerCancelled) {
				err = nil
			}
			common.ExitOnError("play", err)
		},
	}.ToCobra()
}

// Run resolves the timing file, loads it and plays it on out.
func Run(ctx context.Context, params *Params, cfg *config.Config, in *os.File, out *os.File) error {
	path, err := resolvePath(ctx, params.Path, in, out)
	if err != nil {
		return err
	}

	song, err := timing.LoadFile(path)
	if err != nil {
		return err
	}
	slog.Info("loaded timing file", "path", path, "title", song.Metadata.Title, "lines", len(song.Lines))

	opts := playerOptions(params, cfg)

	if params.Follow {
		follower, err := Follow(ctx, path)
		if err != nil {
			return err
		}
		opts.Reloads = follower.Reloads()
		opts.Notices = follower.Notices()
	}

	terminal := screen.New(out, screen.Size{Cols: cfg.FallbackColumns, Rows: cfg.FallbackRows})
	if err := terminal.Enter(); err != nil {
		return err
	}
	defer func() { _ = terminal.Leave() }()

	player := NewPlayer(song, terminal, opts)
	return playLoop(ctx, player, countdown(params, cfg), params.Follow)
}

// playLoop counts down, plays, and in follow mode waits for the next reload
// after the song ends.
func playLoop(ctx context.Context, player *Player, wait time.Duration, follow bool) error {
	for {
		if err := player.Countdown(ctx, wait); err != nil {
			return err
		}
		if err := player.Run(ctx); err != nil {
			return err
		}
		if !follow {
			return nil
		}

		slog.Info("playback finished, waiting for changes to the timing file")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case song := <-player.opts.Reloads:
			player.Load(song)
		}
	}
}

func playerOptions(params *Params, cfg *config.Config) Options {
	interval := cfg.RefreshInterval()
	if params.Fps > 0 {
		interval = time.Duration(float64(time.Second) / params.Fps)
	}
	scroll := cfg.ScrollIncrement
	if params.Scroll > 0 {
		scroll = params.Scroll
	}
	styles := render.NewStyles(cfg.Colors)
	return Options{
		Interval:        interval,
		ScrollIncrement: scroll,
		Styles:          &styles,
	}
}

func countdown(params *Params, cfg *config.Config) time.Duration {
	if params.Countdown >= 0 {
		return time.Duration(params.Countdown) * time.Second
	}
	return cfg.Countdown()
}

// resolvePath returns a playable path: the given one if valid, otherwise a
// pick from the current directory, otherwise whatever the user types.
func resolvePath(ctx context.Context, path string, in *os.File, out io.Writer) (string, error) {
	if path != "" {
		err := CheckPath(path, timing.DefaultLoaders)
		if err == nil {
			return path, nil
		}
		_, _ = fmt.Fprintf(out, "%s: %v\n", path, err)
		return PromptPath(ctx, in, out, timing.DefaultLoaders)
	}

	if term.IsTerminal(int(in.Fd())) {
		picked, err := PickFile(".", timing.DefaultLoaders)
		switch {
		case err == nil:
			return picked, nil
		case errors.Is(err, ErrNoTimingFiles), errors.Is(err, errManualEntry):
			slog.Debug("falling back to path prompt", "reason", err)
		default:
			return "", err
		}
	}

	return PromptPath(ctx, in, out, timing.DefaultLoaders)
}
