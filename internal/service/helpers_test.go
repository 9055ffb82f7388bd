package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/themetune/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/themetune/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
)

// fakeMetadata is a MetadataReader backed by maps.
type fakeMetadata struct {
	durations map[string]int
	art       map[string][]byte

	durationCalls int
	artCalls      int
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		durations: make(map[string]int),
		art:       make(map[string][]byte),
	}
}

func (f *fakeMetadata) Duration(path string) (int, error) {
	f.durationCalls++
	d, ok := f.durations[path]
	if !ok {
		return 0, domain.ErrMetadataUnavailable
	}
	return d, nil
}

func (f *fakeMetadata) EmbeddedArt(path string) ([]byte, error) {
	f.artCalls++
	data, ok := f.art[path]
	if !ok {
		return nil, domain.ErrNoEmbeddedArt
	}
	return data, nil
}

// eventRecorder collects every event published on a bus.
type eventRecorder struct {
	events []domain.Event
}

func recordEvents(bus *eventbus.SyncEventBus) *eventRecorder {
	r := &eventRecorder{}
	bus.SubscribeAll(func(e domain.Event) { r.events = append(r.events, e) })
	return r
}

func (r *eventRecorder) ofType(t domain.EventType) []domain.Event {
	var out []domain.Event
	for _, e := range r.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) reset() { r.events = nil }

func makeTracks(names ...string) []domain.Track {
	tracks := make([]domain.Track, len(names))
	for i, n := range names {
		tracks[i] = domain.NewTrack("/music/" + n)
	}
	return tracks
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type playbackFixture struct {
	svc    *PlaybackService
	engine *mock.Engine
	meta   *fakeMetadata
	bus    *eventbus.SyncEventBus
	events *eventRecorder
}

func newPlaybackFixture(t *testing.T, names ...string) *playbackFixture {
	t.Helper()
	log := logger.NewTestLogger()

	engine := mock.NewEngine(log)
	require.NoError(t, engine.Initialize(44100))
	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	f := &playbackFixture{
		engine: engine,
		meta:   newFakeMetadata(),
		bus:    bus,
		events: recordEvents(bus),
	}
	f.svc = NewPlaybackService(log, engine, f.meta, bus)
	if len(names) > 0 {
		f.svc.ReplacePlaylist("/music", makeTracks(names...))
	}
	f.events.reset()
	f.engine.ResetCalls()
	return f
}
