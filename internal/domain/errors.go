// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrPlaylistEmpty is returned when an operation requires a non-empty playlist.
	ErrPlaylistEmpty = errors.New("playlist is empty")

	// ErrInvalidIndex is returned when a playlist index is out of bounds.
	ErrInvalidIndex = errors.New("invalid playlist index")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyInitialized is returned when attempting to initialize an already initialized component.
	ErrAlreadyInitialized = errors.New("component already initialized")

	// ErrUnsupportedFormat is returned when an audio file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoTrackLoaded is returned when the engine is asked to play with nothing loaded.
	ErrNoTrackLoaded = errors.New("no track loaded")

	// ErrPositionUnavailable is returned when the engine cannot report a playback position.
	ErrPositionUnavailable = errors.New("playback position unavailable")

	// ErrMetadataUnavailable is returned when a file's duration cannot be read.
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrNoEmbeddedArt is returned when a file carries no cover picture.
	ErrNoEmbeddedArt = errors.New("no embedded album art")

	// ErrNoThemes is returned when a theme operation needs at least one loaded descriptor.
	ErrNoThemes = errors.New("no themes loaded")

	// ErrThemeNotFound is returned when a theme name is not in the store.
	ErrThemeNotFound = errors.New("theme not found")
)

// AudioEngineError represents an error from the audio engine.
// This wraps low-level audio library errors with additional context.
type AudioEngineError struct {
	Op      string // Operation that failed (e.g., "load", "play", "stop")
	Path    string // File path (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *AudioEngineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("audio engine %s failed for '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("audio engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AudioEngineError) Unwrap() error {
	return e.Err
}

// NewAudioEngineError creates a new AudioEngineError.
func NewAudioEngineError(op, path, message string, err error) *AudioEngineError {
	return &AudioEngineError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// ThemeError represents a failure to load or render a theme.
type ThemeError struct {
	Op      string // Operation that failed (e.g., "load", "apply")
	Theme   string // Theme name, or file name when the name is not known yet
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ThemeError) Error() string {
	return fmt.Sprintf("theme %s failed for '%s': %s", e.Op, e.Theme, e.Message)
}

// Unwrap returns the underlying error.
func (e *ThemeError) Unwrap() error {
	return e.Err
}

// NewThemeError creates a new ThemeError.
func NewThemeError(op, theme, message string, err error) *ThemeError {
	return &ThemeError{
		Op:      op,
		Theme:   theme,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
