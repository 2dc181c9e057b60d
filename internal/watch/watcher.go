// Package watch re-runs a conversion callback when files in a directory
// change, debouncing event bursts so a save storm triggers one pass.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a single directory for create, write, remove, and rename
// events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New constructs a Watcher on dir.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch: add %q: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{watcher: fsWatcher, debounce: debounce}, nil
}

// Run blocks until the context is cancelled, invoking onChange after each
// debounced burst of events. Callback errors are returned to the caller
// through onError and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, onChange func() error, onError func(error)) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		case <-fire:
			timer = nil
			fire = nil
			if err := onChange(); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
