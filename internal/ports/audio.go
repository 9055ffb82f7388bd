// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"
)

// AudioEngine is the interface for audio playback engines.
// This abstracts the underlying audio backend and allows for testing with mocks.
//
// The engine holds at most one loaded track. Loading a new track releases the previous one.
//
// Implementations must be thread-safe as the output device may call back from its own goroutine.
type AudioEngine interface {
	// Lifecycle methods

	// Initialize opens the output device at the given sample rate (e.g., 44100).
	//
	// Return an error if initialization fails.
	Initialize(sampleRate int) error

	// Shutdown releases all audio engine resources.
	// Should be called when the engine is no longer needed.
	Shutdown() error

	// IsInitialized returns true if the engine has been successfully initialized.
	IsInitialized() bool

	// Playback control methods

	// Load prepares the audio file at filePath for playback, replacing any loaded track.
	// The track starts paused at position zero.
	Load(filePath string) error

	// Play starts or resumes playback of the loaded track.
	// Returns domain.ErrNoTrackLoaded if nothing is loaded.
	Play() error

	// Pause suspends playback, keeping the position.
	Pause() error

	// Stop halts playback and releases the loaded track.
	// Stopping an idle engine is not an error.
	Stop() error

	// State query methods

	// Position returns the elapsed time of the loaded track.
	// Returns domain.ErrPositionUnavailable when no track is loaded.
	Position() (time.Duration, error)

	// Volume control methods

	// SetVolume sets the linear output gain.
	// gain: 0.0 (silent) to 1.0 (full volume)
	SetVolume(gain float64) error
}

// MetadataReader extracts what the player shows about a file without playing it.
// Every call returns a value or a named failure so callers can degrade deterministically.
type MetadataReader interface {
	// Duration returns the track length in whole seconds.
	// Returns domain.ErrMetadataUnavailable when the length cannot be determined.
	Duration(filePath string) (int, error)

	// EmbeddedArt returns the raw bytes of the file's cover picture.
	// Returns domain.ErrNoEmbeddedArt when the file carries none.
	EmbeddedArt(filePath string) ([]byte, error)
}
