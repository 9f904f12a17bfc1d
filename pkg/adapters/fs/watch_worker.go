package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/timer"
)

// watchDebounce collapses the temp-write-then-rename burst of a single atomic
// save into one event.
const watchDebounce = 50 * time.Millisecond

// Watch emits an event whenever the store file changes on disk, typically
// because another process saved annotations while this one has views open.
// The returned channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	// The parent directory is watched rather than the file itself: rename
	// replaces the inode, which would silently detach a file-level watch.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	debounce := timer.NewResettable()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer debounce.Stop()
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				eType := mapEventType(ev)
				if eType == "" {
					continue
				}
				if s.logger != nil {
					s.logger.Debug("store file changed", "op", ev.Op.String())
				}
				debounce.Reset(watchDebounce, func() {
					// Recover in case the channel was closed by a racing
					// shutdown between the stale check and the send.
					defer func() { _ = recover() }()
					select {
					case events <- core.Event{Type: eType, Path: s.path, Timestamp: time.Now().Unix()}:
					case <-ctx.Done():
					}
				})

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if s.logger != nil {
					s.logger.Error("fsnotify error", "error", wErr)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("watch worker failed", "error", err)
		}
	}))

	return events, nil
}

func mapEventType(ev fsnotify.Event) core.EventType {
	switch {
	case ev.Has(fsnotify.Create):
		return core.EventCreate
	case ev.Has(fsnotify.Write):
		return core.EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

var _ core.Watchable = (*Store)(nil)
