package recent

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/servr-dev/servr/pkg/logging"
)

// Watcher reloads the recent store when another servr process updates the
// backing file, so a long-running serve session stays in sync.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher

	// debounceDelay coalesces rapid successive writes into one reload.
	debounceDelay time.Duration

	logger zerolog.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for the store's backing file.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		store:         store,
		watcher:       fsw,
		debounceDelay: 100 * time.Millisecond,
		logger:        logging.NewLogger("recent.watcher", zerolog.InfoLevel),
	}, nil
}

// Start begins watching and blocks until the context is canceled. Run it
// in its own goroutine:
//
//	go watcher.Start(ctx)
//
// fsnotify watches directories, not files, so the store file's parent is
// watched and events are filtered by name.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	name := filepath.Base(w.store.Path())

	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error().Err(err).Str("dir", dir).Msg("Failed to watch recent directory")
		return err
	}

	w.logger.Debug().
		Str("file", w.store.Path()).
		Dur("debounce", w.debounceDelay).
		Msg("Watching recent file")

	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Error closing watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		if err := w.store.Load(); err != nil {
			w.logger.Warn().Err(err).Msg("Reload after change failed")
			return
		}
		w.logger.Debug().Msg("Recent list reloaded after external change")
	})
}
