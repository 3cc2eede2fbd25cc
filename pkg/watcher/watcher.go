package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a debounced batch of manifest changes.
type Event struct {
	Reason string
	Paths  []string
}

// New watches the given manifest files. The parent directory of each
// file is watched rather than the file itself, so the watch survives
// editors and atomic writers that replace the file by rename.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	files := make(map[string]bool, len(paths))
	for _, path := range paths {
		files[filepath.Clean(path)] = true
	}

	return &Watcher{
		Events:   make(chan Event, 64),
		Errors:   make(chan error, 64),
		watcher:  fsw,
		debounce: debounce,
		files:    files,
	}, nil
}

type Watcher struct {
	Events chan Event
	Errors chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration
	files    map[string]bool
}

// Start registers the watches and runs the event loop until ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for path := range w.files {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
		dirs[dir] = true
	}

	go w.loop(ctx)

	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = make(map[string]bool)
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-w.watcher.Events:
			if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !w.files[name] {
				continue
			}
			pending[name] = true
			resetTimer()

		case <-timerCh:
			timer = nil
			timerCh = nil
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			slices.Sort(paths)
			clear(pending)
			lazySend(w.Events, Event{
				Reason: fmt.Sprintf("file change (%s quiet)", w.debounce),
				Paths:  paths,
			})

		case err := <-w.watcher.Errors:
			lazySend(w.Errors, fmt.Errorf("watch error: %w", err))
		}
	}
}

func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// lazySend drops the value when nobody is draining the channel.
func lazySend[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
