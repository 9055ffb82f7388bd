// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/imaging"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// Track list
	SetTracks(names []string)
	SetSelectedTrack(index int)

	// Playback state updates
	SetPlayState(playing bool)
	SetAlbumArt(img image.Image)
	SetProgress(positionSeconds, durationSeconds int)
	SetVolume(level int)
}

// PlayerSession is what the presenter drives. service.Session implements it.
type PlayerSession interface {
	Play() error
	Stop() error
	Next() error
	SelectTrack(index int) error
	SetVolume(level int)

	CycleTheme() error
	SelectTheme(name string) error
	ThemeNames() []string

	OpenFolder(folder string) error
	MusicFolder() string
}

// Presenter implements the Presenter pattern (MVP architecture).
// It maps domain events to view updates and view gestures to session commands.
//
// Every event it handles is published on the UI thread (the services run
// there and the poller dispatches onto it), so handlers touch widgets directly.
type Presenter struct {
	logger  *slog.Logger
	session PlayerSession
	bus     ports.EventBus
	view    UIView

	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewPresenter creates a new presenter and subscribes it to the bus.
func NewPresenter(logger *slog.Logger, session PlayerSession, bus ports.EventBus, view UIView) *Presenter {
	p := &Presenter{
		logger:  logger,
		session: session,
		bus:     bus,
		view:    view,
	}
	p.subscribeToEvents()
	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventTrackLoaded:          p.onTrackLoaded,
		domain.EventPlaybackStateChanged: p.onStateChanged,
		domain.EventTrackProgress:        p.onProgress,
		domain.EventVolumeChanged:        p.onVolumeChanged,
		domain.EventPlaylistUpdated:      p.onPlaylistUpdated,
	}

	for eventType, handler := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.bus.Subscribe(eventType, handler))
	}
}

// Event handlers

func (p *Presenter) onTrackLoaded(event domain.Event) {
	e, ok := event.(domain.TrackLoadedEvent)
	if !ok {
		return
	}

	p.view.SetSelectedTrack(e.Index)
	p.view.SetAlbumArt(e.Info.AlbumArt)
	p.view.SetProgress(0, e.Info.DurationSeconds)
}

func (p *Presenter) onStateChanged(event domain.Event) {
	e, ok := event.(domain.PlaybackStateChangedEvent)
	if !ok {
		return
	}

	p.view.SetPlayState(e.To == domain.StatePlaying)
	p.view.SetSelectedTrack(e.Index)
}

func (p *Presenter) onProgress(event domain.Event) {
	e, ok := event.(domain.TrackProgressEvent)
	if !ok {
		return
	}

	p.view.SetProgress(e.PositionSeconds, e.DurationSeconds)
}

func (p *Presenter) onVolumeChanged(event domain.Event) {
	e, ok := event.(domain.VolumeChangedEvent)
	if !ok {
		return
	}

	p.view.SetVolume(e.Percent)
}

func (p *Presenter) onPlaylistUpdated(event domain.Event) {
	e, ok := event.(domain.PlaylistUpdatedEvent)
	if !ok {
		return
	}

	names := make([]string, len(e.Tracks))
	for i, track := range e.Tracks {
		names[i] = track.DisplayName
	}
	p.view.SetTracks(names)
	p.view.SetSelectedTrack(domain.NoSelection)
	p.view.SetPlayState(false)
	p.view.SetAlbumArt(imaging.Placeholder(imaging.ArtSize, imaging.ArtSize))
}

// UI Command handlers (called by UI)

// OnPlayClicked handles the play/pause button click.
func (p *Presenter) OnPlayClicked() {
	p.logIfFailed("play", p.session.Play())
}

// OnStopClicked handles the stop button click.
func (p *Presenter) OnStopClicked() {
	p.logIfFailed("stop", p.session.Stop())
}

// OnNextClicked handles the next button click.
func (p *Presenter) OnNextClicked() {
	p.logIfFailed("next", p.session.Next())
}

// OnTrackSelected handles a double-click on the track list.
func (p *Presenter) OnTrackSelected(index int) {
	p.logIfFailed("select track", p.session.SelectTrack(index))
}

// OnVolumeChanged handles volume slider changes (0 to 100).
func (p *Presenter) OnVolumeChanged(level int) {
	p.session.SetVolume(level)
}

// OnThemeClicked cycles to the next theme.
func (p *Presenter) OnThemeClicked() {
	p.logIfFailed("cycle theme", p.session.CycleTheme())
}

// OnThemeChosen applies a theme picked from the context menu.
func (p *Presenter) OnThemeChosen(name string) {
	p.logIfFailed("select theme", p.session.SelectTheme(name))
}

// ThemeNames lists the themes for the context menu.
func (p *Presenter) ThemeNames() []string {
	return p.session.ThemeNames()
}

// OnFolderOpened handles folder open requests.
func (p *Presenter) OnFolderOpened(folderPath string) {
	p.logIfFailed("open folder", p.session.OpenFolder(folderPath))
}

// MusicFolder returns the folder the open dialog starts in.
func (p *Presenter) MusicFolder() string {
	return p.session.MusicFolder()
}

// logIfFailed records a failed command. Failures never reach the user as a
// dialog; an empty theme store is expected and only logged at debug.
func (p *Presenter) logIfFailed(op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrNoThemes) {
		p.logger.Debug(op+" ignored", slog.Any("error", err))
		return
	}
	p.logger.Warn(op+" failed", slog.Any("error", err))
}

// Shutdown unsubscribes from the bus.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, id := range p.subscriptions {
			p.bus.Unsubscribe(id)
		}
		p.subscriptions = nil
	})
}
