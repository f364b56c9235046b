package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/raphi011/nestedfolder/internal/log"
	"github.com/raphi011/nestedfolder/internal/resolve"
)

// Follow resolves root, emits the result, then re-resolves after every
// debounced structural change below root and emits again whenever the
// resolved path or error differs from the last one emitted. It blocks
// until ctx is cancelled.
func Follow(ctx context.Context, r *resolve.Resolver, root string, debounce time.Duration, emit func(resolve.Result)) error {
	l := log.FromContext(ctx)

	changes := make(chan struct{}, 1)
	w, err := NewWatcher(debounce, l, func([]string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	watched, unwatched, err := w.WatchRecursive(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	l.Debug("watching", "root", root, "dirs", watched, "skipped", unwatched)
	w.Start()

	last, _ := r.Trace(ctx, root)
	if ctx.Err() != nil {
		return nil
	}
	emit(last)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			res, _ := r.Trace(ctx, root)
			if ctx.Err() != nil {
				return nil
			}
			if sameOutcome(res, last) {
				l.Debug("unchanged", "path", res.Path)
				continue
			}
			emit(res)
			last = res
		}
	}
}

func sameOutcome(a, b resolve.Result) bool {
	if a.Path != b.Path {
		return false
	}
	if (a.Err == nil) != (b.Err == nil) {
		return false
	}
	return a.Err == nil || a.Err.Error() == b.Err.Error()
}
