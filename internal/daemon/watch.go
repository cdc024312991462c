package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/monakit/monakit/internal/logger"
)

// Trigger says why the watcher invoked its callback.
type Trigger string

const (
	TriggerStart  Trigger = "start"
	TriggerChange Trigger = "change"
	TriggerTick   Trigger = "tick"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before firing.
const DefaultDebounce = 300 * time.Millisecond

// Watcher runs a callback on start, on file changes under Dir and on every
// Interval tick.
type Watcher struct {
	Dir      string
	Interval time.Duration
	Debounce time.Duration
	Log      *logger.Logger
}

// Watch runs fn until ctx is done. See Watcher.
func Watch(ctx context.Context, dir string, interval time.Duration, fn func(Trigger)) error {
	w := &Watcher{Dir: dir, Interval: interval}
	return w.Run(ctx, fn)
}

// Run calls fn once, then again after each settled burst of write, create,
// remove or rename events and on each tick. fn runs on the caller's
// goroutine; Run returns nil once ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func(Trigger)) error {
	log := logger.OrDiscard(w.Log)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if w.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := addTree(fsw, w.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Dir, err)
	}

	fn(TriggerStart)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	settle := time.NewTimer(debounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			fn(TriggerTick)

		case <-settle.C:
			fn(TriggerChange)

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			log.Debug("file event", "op", event.Op.String(), "file", event.Name)
			if event.Has(fsnotify.Create) {
				// New directories are not watched recursively by fsnotify.
				if err := addTree(fsw, event.Name); err != nil {
					log.Debug("not a directory", "file", event.Name)
				}
			}
			settle.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("error watching files", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// addTree watches root and every directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if path == root {
				return fmt.Errorf("%s is not a directory", root)
			}
			return nil
		}
		return fsw.Add(path)
	})
}
