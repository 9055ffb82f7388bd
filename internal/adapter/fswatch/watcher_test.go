package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/themetune/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
	"github.com/tejashwikalptaru/themetune/internal/testutil"
)

const testDebounce = 100 * time.Millisecond

func isAudio(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

func direct(fn func()) { fn() }

type watchFixture struct {
	watcher *Watcher
	bus     *eventbus.SyncEventBus
	changes chan struct{}
}

func newWatchFixture(t *testing.T) *watchFixture {
	t.Helper()

	bus := eventbus.NewSyncEventBus(logger.NewTestLogger())
	f := &watchFixture{
		watcher: NewWatcher(logger.NewTestLogger(), bus, isAudio, testDebounce),
		bus:     bus,
		changes: make(chan struct{}, 16),
	}
	require.NoError(t, f.watcher.Start(context.Background(), direct, func() {
		f.changes <- struct{}{}
	}))
	t.Cleanup(func() {
		f.watcher.Stop()
		_ = bus.Close()
	})
	return f
}

func (f *watchFixture) expectChange(t *testing.T) {
	t.Helper()
	select {
	case <-f.changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func (f *watchFixture) expectQuiet(t *testing.T) {
	t.Helper()
	select {
	case <-f.changes:
		t.Fatal("unexpected change notification")
	case <-time.After(6 * testDebounce):
	}
}

func TestWatcher_NotifiesOnNewTrack(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	dir := t.TempDir()
	require.NoError(t, f.watcher.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("x"), 0o644))
	f.expectChange(t)

	f.watcher.Stop()
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	dir := t.TempDir()
	require.NoError(t, f.watcher.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("x"), 0o644))
	f.expectQuiet(t)

	f.watcher.Stop()
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	dir := t.TempDir()
	require.NoError(t, f.watcher.Watch(dir))

	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	f.expectChange(t)
	f.expectQuiet(t)

	f.watcher.Stop()
}

func TestWatcher_FollowsPlaylistUpdates(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	first, second := t.TempDir(), t.TempDir()

	f.bus.Publish(domain.NewPlaylistUpdatedEvent(first, nil))
	assert.Equal(t, first, f.watcher.Folder())

	f.bus.Publish(domain.NewPlaylistUpdatedEvent(second, nil))
	assert.Equal(t, second, f.watcher.Folder())

	require.NoError(t, os.WriteFile(filepath.Join(first, "old.mp3"), []byte("x"), 0o644))
	f.expectQuiet(t)

	require.NoError(t, os.WriteFile(filepath.Join(second, "new.mp3"), []byte("x"), 0o644))
	f.expectChange(t)

	f.watcher.Stop()
}

func TestWatcher_MissingFolder(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	missing := filepath.Join(t.TempDir(), "not-yet")

	assert.Error(t, f.watcher.Watch(missing))

	require.NoError(t, os.Mkdir(missing, 0o755))
	require.NoError(t, f.watcher.Watch(missing), "same folder is retried")

	require.NoError(t, os.WriteFile(filepath.Join(missing, "song.mp3"), []byte("x"), 0o644))
	f.expectChange(t)

	f.watcher.Stop()
}

func TestWatcher_StartTwice(t *testing.T) {
	defer testutil.CheckLeaks(t)()

	f := newWatchFixture(t)
	err := f.watcher.Start(context.Background(), direct, func() {})
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)

	f.watcher.Stop()
	f.watcher.Stop()
}

func TestWatcher_WatchBeforeStart(t *testing.T) {
	bus := eventbus.NewSyncEventBus(logger.NewTestLogger())
	w := NewWatcher(logger.NewTestLogger(), bus, isAudio, 0)

	require.NoError(t, w.Watch("/anywhere"))
	assert.Equal(t, "/anywhere", w.Folder())
	assert.Equal(t, DefaultDebounce, w.debounce)
	w.Stop()
}
