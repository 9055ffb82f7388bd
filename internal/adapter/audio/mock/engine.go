// Package mock provides a mock implementation of the AudioEngine interface.
// It is used by the service tests and by --mock runs on machines without an output device.
package mock

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// Engine is a mock implementation of the AudioEngine interface.
// It simulates audio playback in memory without producing sound.
// Position only moves when the test calls Advance.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu          sync.Mutex
	initialized bool
	sampleRate  int

	// Loaded track state
	path     string
	loaded   bool
	playing  bool
	position time.Duration
	gain     float64

	// calls records every engine command in order, e.g. "load:/a.mp3", "play"
	calls []string

	// Behavior configuration (for testing error scenarios)
	failInitialize bool
	failLoad       bool
	failPlay       bool
	failPosition   bool
}

// NewEngine creates a new mock audio engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger.With(slog.String("engine", "mock")),
		gain:   1.0,
	}
}

// SetFailInitialize configures the mock to fail initialization.
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading tracks.
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback.
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// SetFailPosition configures the mock to fail position queries.
func (m *Engine) SetFailPosition(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPosition = fail
}

// Initialize initializes the mock audio engine.
func (m *Engine) Initialize(sampleRate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewAudioEngineError("initialize", "", "mock initialization failed", nil)
	}
	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.initialized = true
	m.sampleRate = sampleRate
	m.logger.Debug("mock engine initialized", slog.Int("sample_rate", sampleRate))
	return nil
}

// Shutdown shuts down the mock audio engine.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	m.initialized = false
	m.unloadLocked()
	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Load simulates opening a track. Any previous track is released.
func (m *Engine) Load(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "load:"+filePath)

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	m.unloadLocked()

	if m.failLoad {
		return domain.NewAudioEngineError("load", filePath, "mock load failed", nil)
	}
	if ext := filepath.Ext(filePath); ext == "" {
		return domain.NewAudioEngineError("load", filePath, "file has no extension", domain.ErrUnsupportedFormat)
	}

	m.path = filePath
	m.loaded = true
	return nil
}

// Play starts or resumes the loaded track.
func (m *Engine) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "play")

	if !m.loaded {
		return domain.ErrNoTrackLoaded
	}
	if m.failPlay {
		return domain.NewAudioEngineError("play", m.path, "mock play failed", nil)
	}
	m.playing = true
	return nil
}

// Pause suspends the loaded track.
func (m *Engine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "pause")

	if !m.loaded {
		return domain.ErrNoTrackLoaded
	}
	m.playing = false
	return nil
}

// Stop releases the loaded track. Stopping an idle engine is fine.
func (m *Engine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "stop")
	m.unloadLocked()
	return nil
}

// Position returns the simulated playback position.
func (m *Engine) Position() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPosition {
		return 0, domain.NewAudioEngineError("position", m.path, "mock position failed", domain.ErrPositionUnavailable)
	}
	if !m.loaded {
		return 0, domain.ErrPositionUnavailable
	}
	return m.position, nil
}

// SetVolume records the linear gain.
func (m *Engine) SetVolume(gain float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gain < 0 || gain > 1 {
		return domain.NewValidationError("gain", gain, "must be between 0.0 and 1.0")
	}
	m.calls = append(m.calls, fmt.Sprintf("volume:%.2f", gain))
	m.gain = gain
	return nil
}

func (m *Engine) unloadLocked() {
	m.path = ""
	m.loaded = false
	m.playing = false
	m.position = 0
}

// Test helpers

// Advance moves the position forward by d if the track is playing.
func (m *Engine) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing {
		m.position += d
	}
}

// SetPosition overrides the position a loaded track reports. Any value is
// accepted, including negative ones.
func (m *Engine) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// LoadedPath returns the loaded file, or "" when idle.
func (m *Engine) LoadedPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// IsPlaying reports whether the loaded track is playing.
func (m *Engine) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Gain returns the last gain set.
func (m *Engine) Gain() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gain
}

// Calls returns a copy of the recorded commands.
func (m *Engine) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls clears the recorded commands.
func (m *Engine) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
