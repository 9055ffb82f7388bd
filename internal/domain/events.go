// Package domain defines events for the event-driven architecture.
// Events decouple the services from the window that renders them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventTrackLoaded          EventType = "track.loaded"
	EventPlaybackStateChanged EventType = "playback.state_changed"
	EventTrackProgress        EventType = "track.progress"
	EventTrackError           EventType = "track.error"

	// Volume events
	EventVolumeChanged EventType = "volume.changed"

	// Playlist events
	EventPlaylistUpdated EventType = "playlist.updated"

	// Theme events
	EventThemeApplied EventType = "theme.applied"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackLoadedEvent is published after a track is loaded into the engine
// and its runtime info has been derived.
type TrackLoadedEvent struct {
	baseEvent
	Track Track
	Index int
	Info  TrackRuntimeInfo
}

// Type returns the event type.
func (e TrackLoadedEvent) Type() EventType {
	return EventTrackLoaded
}

// NewTrackLoadedEvent creates a new TrackLoadedEvent.
func NewTrackLoadedEvent(track Track, index int, info TrackRuntimeInfo) TrackLoadedEvent {
	return TrackLoadedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Index:     index,
		Info:      info,
	}
}

// PlaybackStateChangedEvent is published on every state transition.
type PlaybackStateChangedEvent struct {
	baseEvent
	From  PlaybackState
	To    PlaybackState
	Index int
}

// Type returns the event type.
func (e PlaybackStateChangedEvent) Type() EventType {
	return EventPlaybackStateChanged
}

// NewPlaybackStateChangedEvent creates a new PlaybackStateChangedEvent.
func NewPlaybackStateChangedEvent(from, to PlaybackState, index int) PlaybackStateChangedEvent {
	return PlaybackStateChangedEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
		Index:     index,
	}
}

// TrackProgressEvent is published by the poller while playback is reportable.
type TrackProgressEvent struct {
	baseEvent
	PositionSeconds int
	DurationSeconds int
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// Label renders the event as the time label text.
func (e TrackProgressEvent) Label() string {
	return FormatProgress(e.PositionSeconds, e.DurationSeconds)
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, duration int) TrackProgressEvent {
	return TrackProgressEvent{
		baseEvent:       newBaseEvent(),
		PositionSeconds: position,
		DurationSeconds: duration,
	}
}

// TrackErrorEvent is published when an engine call fails for a track.
// Playback state still advances; the event only reports the failure.
type TrackErrorEvent struct {
	baseEvent
	Track Track
	Err   error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(track Track, err error) TrackErrorEvent {
	return TrackErrorEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Err:       err,
	}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Percent int     // 0 to 100
	Gain    float64 // 0.0 to 1.0
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(percent int, gain float64) VolumeChangedEvent {
	return VolumeChangedEvent{
		baseEvent: newBaseEvent(),
		Percent:   percent,
		Gain:      gain,
	}
}

// PlaylistUpdatedEvent is published when a scan replaces the playlist.
type PlaylistUpdatedEvent struct {
	baseEvent
	Folder string
	Tracks []Track
}

// Type returns the event type.
func (e PlaylistUpdatedEvent) Type() EventType {
	return EventPlaylistUpdated
}

// NewPlaylistUpdatedEvent creates a new PlaylistUpdatedEvent.
func NewPlaylistUpdatedEvent(folder string, tracks []Track) PlaylistUpdatedEvent {
	return PlaylistUpdatedEvent{
		baseEvent: newBaseEvent(),
		Folder:    folder,
		Tracks:    tracks,
	}
}

// ThemeAppliedEvent is published after a descriptor has been rendered.
type ThemeAppliedEvent struct {
	baseEvent
	Name    string
	Palette Palette
}

// Type returns the event type.
func (e ThemeAppliedEvent) Type() EventType {
	return EventThemeApplied
}

// NewThemeAppliedEvent creates a new ThemeAppliedEvent.
func NewThemeAppliedEvent(name string, palette Palette) ThemeAppliedEvent {
	return ThemeAppliedEvent{
		baseEvent: newBaseEvent(),
		Name:      name,
		Palette:   palette,
	}
}
