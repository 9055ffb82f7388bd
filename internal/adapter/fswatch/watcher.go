// Package fswatch watches the music folder so the playlist can follow files
// being added or removed while the player is idle.
package fswatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// DefaultDebounce collapses a burst of file events (a copy in progress,
// a batch delete) into one change notification.
const DefaultDebounce = 500 * time.Millisecond

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher follows the folder of the current playlist.
//
// It retargets itself on every PlaylistUpdatedEvent, so it always watches
// whatever folder was scanned last. Change notifications go through the
// dispatcher and therefore run on the UI thread.
type Watcher struct {
	logger   *slog.Logger
	bus      ports.EventBus
	relevant func(path string) bool
	debounce time.Duration

	mu     sync.Mutex
	fw     *fsnotify.Watcher
	folder string
	added  bool
	subID  domain.SubscriptionID
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher. relevant filters event paths (typically the
// scanner's IsSupported); a non-positive debounce selects DefaultDebounce.
func NewWatcher(logger *slog.Logger, bus ports.EventBus, relevant func(path string) bool, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		logger:   logger.With(slog.String("component", "fswatch")),
		bus:      bus,
		relevant: relevant,
		debounce: debounce,
	}
}

// Start begins watching. onChange is dispatched once per burst of relevant events.
func (w *Watcher) Start(ctx context.Context, dispatch ports.Dispatcher, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fw != nil {
		return domain.ErrAlreadyInitialized
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create folder watcher: %w", err)
	}
	w.fw = fw

	if w.folder != "" {
		if err := fw.Add(w.folder); err != nil {
			w.logger.Debug("cannot watch folder", slog.String("folder", w.folder), slog.Any("error", err))
		} else {
			w.added = true
		}
	}

	w.subID = w.bus.Subscribe(domain.EventPlaylistUpdated, func(event domain.Event) {
		e, ok := event.(domain.PlaylistUpdatedEvent)
		if !ok {
			return
		}
		if err := w.Watch(e.Folder); err != nil {
			w.logger.Debug("music folder not watched", slog.String("folder", e.Folder), slog.Any("error", err))
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx, fw, dispatch, onChange)

	w.logger.Debug("folder watcher started", slog.Duration("debounce", w.debounce))
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, dispatch ports.Dispatcher, onChange func()) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Op&watchedOps == 0 || !w.relevant(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("folder watcher error", slog.Any("error", err))

		case <-fire:
			fire = nil
			dispatch(onChange)
		}
	}
}

// Watch switches the watched folder. Before Start it only records the folder.
// Watching the same folder again retries a previously failed registration.
func (w *Watcher) Watch(folder string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fw == nil {
		w.folder = folder
		return nil
	}
	if folder == w.folder && w.added {
		return nil
	}

	if w.added {
		_ = w.fw.Remove(w.folder)
		w.added = false
	}
	w.folder = folder
	if folder == "" {
		return nil
	}
	if err := w.fw.Add(folder); err != nil {
		return fmt.Errorf("watch %s: %w", folder, err)
	}
	w.added = true

	w.logger.Debug("watching music folder", slog.String("folder", folder))
	return nil
}

// Folder returns the folder currently being followed.
func (w *Watcher) Folder() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.folder
}

// Stop ends watching and waits for the event goroutine to exit.
// Stopping an idle watcher is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw, cancel, subID := w.fw, w.cancel, w.subID
	w.fw, w.cancel, w.added = nil, nil, false
	w.mu.Unlock()

	if fw == nil {
		return
	}

	w.bus.Unsubscribe(subID)
	cancel()
	w.wg.Wait()

	if err := fw.Close(); err != nil {
		w.logger.Debug("closing folder watcher failed", slog.Any("error", err))
	}
	w.logger.Debug("folder watcher stopped")
}
