package beepaudio

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
	"github.com/tejashwikalptaru/themetune/internal/testutil"
)

// fakeOutput stands in for the speaker; tests pull samples by hand.
type fakeOutput struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	bufferSize int
	initErr    error
	streamer   beep.Streamer
	closed     bool
	clears     int
}

func (o *fakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	if o.initErr != nil {
		return o.initErr
	}
	o.sampleRate = sampleRate
	o.bufferSize = bufferSize
	return nil
}

func (o *fakeOutput) Play(s beep.Streamer) { o.streamer = s }
func (o *fakeOutput) Clear()               { o.streamer = nil; o.clears++ }
func (o *fakeOutput) Lock()                { o.mu.Lock() }
func (o *fakeOutput) Unlock()              { o.mu.Unlock() }
func (o *fakeOutput) Close()               { o.closed = true }

// pull streams n samples from the queued streamer.
func (o *fakeOutput) pull(t *testing.T, n int) [][2]float64 {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotNil(t, o.streamer, "nothing queued on output")

	buf := make([][2]float64, n)
	filled := 0
	for filled < n {
		got, ok := o.streamer.Stream(buf[filled:])
		filled += got
		if !ok {
			break
		}
	}
	return buf[:filled]
}

func newTestEngine(t *testing.T, sampleRate int) (*Engine, *fakeOutput) {
	t.Helper()
	out := &fakeOutput{}
	e := newEngine(logger.NewTestLogger(), out)
	require.NoError(t, e.Initialize(sampleRate))
	return e, out
}

func writeTone(t *testing.T, sampleRate int, seconds float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	testutil.WriteWAV(t, path, sampleRate, seconds)
	return path
}

func TestEngine_InitializeOpensOutput(t *testing.T) {
	e, out := newTestEngine(t, 44100)

	assert.True(t, e.IsInitialized())
	assert.Equal(t, beep.SampleRate(44100), out.sampleRate)
	assert.Equal(t, 4410, out.bufferSize)
	assert.ErrorIs(t, e.Initialize(44100), domain.ErrAlreadyInitialized)
}

func TestEngine_InitializeFailure(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	e := newEngine(logger.NewTestLogger(), out)

	err := e.Initialize(44100)
	require.Error(t, err)

	var engineErr *domain.AudioEngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "initialize", engineErr.Op)
	assert.False(t, e.IsInitialized())
}

func TestEngine_LoadRequiresInitialize(t *testing.T) {
	e := newEngine(logger.NewTestLogger(), &fakeOutput{})
	assert.ErrorIs(t, e.Load("/music/a.wav"), domain.ErrNotInitialized)
}

func TestEngine_LoadErrors(t *testing.T) {
	e, _ := newTestEngine(t, 8000)

	t.Run("unsupported extension", func(t *testing.T) {
		err := e.Load(filepath.Join(t.TempDir(), "notes.txt"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		err := e.Load(filepath.Join(t.TempDir(), "gone.wav"))
		var engineErr *domain.AudioEngineError
		require.ErrorAs(t, err, &engineErr)
		assert.Equal(t, "load", engineErr.Op)
	})

	t.Run("undecodable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.wav")
		require.NoError(t, os.WriteFile(path, []byte("definitely not riff"), 0o644))
		err := e.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot decode file")
	})

	_, err := e.Position()
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}

func TestEngine_LoadQueuesPaused(t *testing.T) {
	e, out := newTestEngine(t, 8000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))

	samples := out.pull(t, 4000)
	assert.Len(t, samples, 4000)
	for _, s := range samples {
		assert.Zero(t, s[0])
	}

	pos, err := e.Position()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), pos)
}

func TestEngine_PlayAdvancesPosition(t *testing.T) {
	e, out := newTestEngine(t, 8000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))
	require.NoError(t, e.Play())

	out.pull(t, 4000)

	pos, err := e.Position()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, pos)

	require.NoError(t, e.Pause())
	out.pull(t, 2000)

	pos, err = e.Position()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, pos, "paused track must not advance")
}

func TestEngine_ResamplesToDeviceRate(t *testing.T) {
	e, out := newTestEngine(t, 16000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))
	require.NoError(t, e.Play())

	out.pull(t, 8000)

	pos, err := e.Position()
	require.NoError(t, err)
	assert.InDelta(t, float64(500*time.Millisecond), float64(pos), float64(100*time.Millisecond))
}

func TestEngine_StopReleasesTrack(t *testing.T) {
	e, out := newTestEngine(t, 8000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))
	require.NoError(t, e.Play())

	require.NoError(t, e.Stop())

	assert.Nil(t, out.streamer)
	assert.Equal(t, 1, out.clears)
	_, err := e.Position()
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.ErrorIs(t, e.Play(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, e.Pause(), domain.ErrNoTrackLoaded)

	// idempotent
	require.NoError(t, e.Stop())
	assert.Equal(t, 1, out.clears)
}

func TestEngine_LoadReplacesPreviousTrack(t *testing.T) {
	e, out := newTestEngine(t, 8000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))
	require.NoError(t, e.Play())
	out.pull(t, 4000)

	require.NoError(t, e.Load(writeTone(t, 8000, 2)))

	assert.Equal(t, 1, out.clears)
	pos, err := e.Position()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), pos)
}

func TestEngine_SetVolume(t *testing.T) {
	e, out := newTestEngine(t, 8000)

	assert.Error(t, e.SetVolume(-0.1))
	assert.Error(t, e.SetVolume(1.5))

	require.NoError(t, e.SetVolume(0))
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))
	require.NoError(t, e.Play())

	for _, s := range out.pull(t, 800) {
		assert.Zero(t, s[0], "muted track must be silent")
	}

	require.NoError(t, e.SetVolume(1))
	var peak float64
	for _, s := range out.pull(t, 800) {
		peak = max(peak, s[0])
	}
	assert.Greater(t, peak, 0.1)
}

func TestApplyGain(t *testing.T) {
	tests := []struct {
		name       string
		gain       float64
		wantVolume float64
		wantSilent bool
	}{
		{"full", 1.0, 0, false},
		{"half", 0.5, -1, false},
		{"quarter", 0.25, -2, false},
		{"mute", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &effects.Volume{Base: 2}
			applyGain(v, tt.gain)
			assert.InDelta(t, tt.wantVolume, v.Volume, 1e-9)
			assert.Equal(t, tt.wantSilent, v.Silent)
		})
	}
}

func TestEngine_Shutdown(t *testing.T) {
	e, out := newTestEngine(t, 8000)
	require.NoError(t, e.Load(writeTone(t, 8000, 1)))

	require.NoError(t, e.Shutdown())

	assert.True(t, out.closed)
	assert.False(t, e.IsInitialized())
	assert.ErrorIs(t, e.Shutdown(), domain.ErrNotInitialized)
}
