package play

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gigurra/karaoke/cmd/timing"
)

// followDebounce groups the burst of events editors produce on save.
const followDebounce = 200 * time.Millisecond

// Follower watches a timing file and publishes a freshly loaded song every
// time it is rewritten. Load failures are published as notices instead.
type Follower struct {
	path    string
	reloads chan *timing.Song
	notices chan string
}

// Reloads delivers successfully reloaded songs; only the latest is kept.
func (f *Follower) Reloads() <-chan *timing.Song {
	return f.reloads
}

// Notices delivers human readable problems found while following.
func (f *Follower) Notices() <-chan string {
	return f.notices
}

// Follow starts watching path until ctx is done.
func Follow(ctx context.Context, path string) (*Follower, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: many editors replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	f := &Follower{
		path:    abs,
		reloads: make(chan *timing.Song, 1),
		notices: make(chan string, 16),
	}
	go f.loop(ctx, watcher)
	return f, nil
}

func (f *Follower) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() { _ = watcher.Close() }()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounce = time.After(followDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "path", f.path, "error", err)
			f.notify(fmt.Sprintf("watcher: %v", err))
		case <-debounce:
			debounce = nil
			f.reload()
		}
	}
}

func (f *Follower) reload() {
	song, err := timing.LoadFile(f.path)
	if err != nil {
		slog.Warn("reload failed, keeping previous version", "path", f.path, "error", err)
		f.notify(fmt.Sprintf("reload failed: %v", err))
		return
	}

	// Replace any reload the player has not picked up yet
	select {
	case <-f.reloads:
	default:
	}
	f.reloads <- song
}

func (f *Follower) notify(msg string) {
	select {
	case f.notices <- msg:
	default:
		slog.Debug("dropping notice, player is not keeping up", "notice", msg)
	}
}
