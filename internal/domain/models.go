// Package domain contains core business models and logic with no infrastructure dependencies.
// This package defines the fundamental entities of the Themetune player.
package domain

import (
	"image"
	"path/filepath"

	"github.com/google/uuid"
)

// trackNamespace scopes the name-based UUIDs generated for tracks.
var trackNamespace = uuid.MustParse("4f9d2c1e-7b3a-4c8e-9a51-3e2f6d7c8b90")

// Track represents a single audio file found by a folder scan.
// Tracks are immutable; identity is the file path.
type Track struct {
	// ID is a stable identifier derived from Path
	ID string

	// Path is the absolute path to the audio file
	Path string

	// DisplayName is what the track list shows (the file's base name)
	DisplayName string
}

// NewTrack creates a track for the file at path.
func NewTrack(path string) Track {
	return Track{
		ID:          uuid.NewSHA1(trackNamespace, []byte(path)).String(),
		Path:        path,
		DisplayName: filepath.Base(path),
	}
}

// PlaybackState represents the current state of the player.
type PlaybackState int

const (
	// StateStopped indicates the engine is halted
	StateStopped PlaybackState = iota

	// StatePlaying indicates playback is active
	StatePlaying

	// StatePaused indicates playback is suspended and can be resumed
	StatePaused
)

// String returns a human-readable representation of the playback state.
func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// TrackRuntimeInfo holds what is derived from a track each time it is loaded.
type TrackRuntimeInfo struct {
	// DurationSeconds is the total length, 0 when it could not be read
	DurationSeconds int

	// AlbumArt is the cover image scaled to the art size, or the placeholder
	AlbumArt image.Image

	// ArtPlaceholder is true when AlbumArt is the blank placeholder
	ArtPlaceholder bool
}
