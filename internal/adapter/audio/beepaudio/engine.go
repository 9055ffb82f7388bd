// Package beepaudio implements the AudioEngine port on top of the gopxl/beep
// decoders and speaker.
package beepaudio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// resampleQuality is passed to beep.Resample when a file's rate differs from the device's.
const resampleQuality = 4

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
	".ogg":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
}

// loadedTrack is the decoder chain of the current file:
// decoder -> (resampler) -> ctrl -> volume -> output.
type loadedTrack struct {
	path     string
	file     io.Closer
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

// Engine plays one file at a time through the speaker.
//
// Thread-safety: engine state is guarded by mu; fields the speaker goroutine
// reads (ctrl, volume, decoder position) are only touched under the output lock.
type Engine struct {
	logger *slog.Logger
	out    output

	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate
	track       *loadedTrack
	gain        float64
}

// NewEngine creates an engine that plays through the system speaker.
func NewEngine(logger *slog.Logger) *Engine {
	return newEngine(logger, speakerOutput{})
}

func newEngine(logger *slog.Logger, out output) *Engine {
	return &Engine{
		logger: logger.With(slog.String("engine", "beep")),
		out:    out,
		gain:   1.0,
	}
}

// Initialize opens the speaker at sampleRate with a 100ms buffer.
func (e *Engine) Initialize(sampleRate int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return domain.ErrAlreadyInitialized
	}

	sr := beep.SampleRate(sampleRate)
	if err := e.out.Init(sr, sr.N(time.Second/10)); err != nil {
		return domain.NewAudioEngineError("initialize", "", "cannot open output device", err)
	}

	e.sampleRate = sr
	e.initialized = true
	e.logger.Info("audio engine initialized", slog.Int("sample_rate", sampleRate))
	return nil
}

// Shutdown stops playback and closes the speaker.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	e.releaseLocked()
	e.out.Close()
	e.initialized = false
	e.logger.Info("audio engine shut down")
	return nil
}

// IsInitialized returns true if the speaker is open.
func (e *Engine) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Load decodes filePath and queues it paused at the start.
func (e *Engine) Load(filePath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}
	e.releaseLocked()

	ext := strings.ToLower(filepath.Ext(filePath))
	decode, ok := decoders[ext]
	if !ok {
		return domain.NewAudioEngineError("load", filePath, fmt.Sprintf("no decoder for %q", ext), domain.ErrUnsupportedFormat)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return domain.NewAudioEngineError("load", filePath, "cannot open file", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return domain.NewAudioEngineError("load", filePath, "cannot decode file", err)
	}

	var source beep.Streamer = streamer
	if format.SampleRate != e.sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, e.sampleRate, streamer)
	}

	t := &loadedTrack{
		path:     filePath,
		file:     f,
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: source, Paused: true},
	}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	applyGain(t.volume, e.gain)

	e.track = t
	e.out.Play(t.volume)

	e.logger.Debug("track loaded",
		slog.String("file", filePath),
		slog.Int("sample_rate", int(format.SampleRate)),
		slog.Int("channels", format.NumChannels))
	return nil
}

// Play starts or resumes the loaded track.
func (e *Engine) Play() error {
	return e.setPaused(false)
}

// Pause suspends the loaded track.
func (e *Engine) Pause() error {
	return e.setPaused(true)
}

func (e *Engine) setPaused(paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.track == nil {
		return domain.ErrNoTrackLoaded
	}

	e.out.Lock()
	e.track.ctrl.Paused = paused
	e.out.Unlock()
	return nil
}

// Stop halts playback and releases the decoder.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()
	return nil
}

func (e *Engine) releaseLocked() {
	if e.track == nil {
		return
	}
	e.out.Clear()

	if err := e.track.streamer.Close(); err != nil {
		e.logger.Debug("closing decoder failed", slog.String("file", e.track.path), slog.Any("error", err))
	}
	_ = e.track.file.Close()
	e.track = nil
}

// Position returns the elapsed time of the loaded track.
func (e *Engine) Position() (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.track == nil {
		return 0, domain.ErrPositionUnavailable
	}

	e.out.Lock()
	pos := e.track.streamer.Position()
	e.out.Unlock()

	return e.track.format.SampleRate.D(pos), nil
}

// SetVolume sets the linear gain, applied to the loaded track and every later one.
func (e *Engine) SetVolume(gain float64) error {
	if gain < 0 || gain > 1 || math.IsNaN(gain) {
		return domain.NewValidationError("gain", gain, "must be between 0.0 and 1.0")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.gain = gain
	if e.track != nil {
		e.out.Lock()
		applyGain(e.track.volume, gain)
		e.out.Unlock()
	}
	return nil
}

// applyGain maps linear gain onto the base-2 exponent effects.Volume uses.
func applyGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
