// Package watch re-resolves a tree whenever its directory structure
// changes, using fsnotify with debouncing.
package watch

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raphi011/nestedfolder/internal/log"
)

// structural is the set of events that can change a directory listing.
const structural = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher watches a directory tree and calls onChange with the changed
// paths once no new events arrived for the debounce period.
type Watcher struct {
	onChange func(paths []string)
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	debounce time.Duration
	pending  map[string]time.Time
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewWatcher creates a watcher. Errors reported by fsnotify are logged
// to l and otherwise ignored.
func NewWatcher(debounce time.Duration, l *log.Logger, onChange func(paths []string)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is nil: %w", os.ErrInvalid)
	}
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive: %w", os.ErrInvalid)
	}

	if l == nil {
		l = log.New(io.Discard, false, false)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		onChange: onChange,
		watcher:  fsw,
		logger:   l,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}, nil
}

// WatchRecursive adds root and every directory below it to the watch
// list. Returns the number of directories watched and the number that
// could not be added. Symlinked directories are not followed.
func (w *Watcher) WatchRecursive(root string) (watched int, unwatched int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip inaccessible dirs
		}
		if d.IsDir() {
			if addErr := w.watcher.Add(path); addErr != nil {
				unwatched++
			} else {
				watched++
			}
		}
		return nil
	})
	return watched, unwatched, err
}

// Start begins processing events in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop stops the watcher and waits for it to finish. Safe to call more
// than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("Warning: watcher error: %v\n", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// handleEvent records structural changes, auto-watching newly created
// directories so deeper levels are covered as they appear.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&structural == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		w.watchIfDir(event.Name)
	}

	w.mu.Lock()
	w.pending[event.Name] = w.now()
	w.mu.Unlock()
}

// watchIfDir adds a path to the watch list if it is a directory.
func (w *Watcher) watchIfDir(path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if _, _, err := w.WatchRecursive(path); err != nil {
		w.logger.Debug("watch failed", "path", path, "error", err)
	}
}

// flush reports changes once the most recent event is older than the
// debounce period. A burst of events (e.g. an archive being extracted)
// produces a single callback.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	now := w.now()
	for _, t := range w.pending {
		if now.Sub(t) < w.debounce {
			w.mu.Unlock()
			return
		}
	}

	ready := make([]string, 0, len(w.pending))
	for path := range w.pending {
		ready = append(ready, path)
	}
	clear(w.pending)
	w.mu.Unlock()

	w.logger.Debug("tree changed", "events", len(ready))
	w.onChange(ready)
}
