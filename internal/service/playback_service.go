// Package service provides the business logic of the Themetune player.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/imaging"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// command is a user request handled by the playback state machine.
type command int

const (
	cmdPlay command = iota
	cmdStop
	cmdNext
	cmdSelect
)

func (c command) String() string {
	switch c {
	case cmdPlay:
		return "play"
	case cmdStop:
		return "stop"
	case cmdNext:
		return "next"
	case cmdSelect:
		return "select"
	default:
		return "unknown"
	}
}

// transition performs a command from one state and returns the resulting state.
// arg is the track index for cmdSelect and unused otherwise.
type transition func(s *PlaybackService, arg int) (domain.PlaybackState, error)

// transitions is the playback state machine. Every (state, command) pair is listed;
// pairs that do nothing return the state they were called in.
var transitions = map[domain.PlaybackState]map[command]transition{
	domain.StateStopped: {
		cmdPlay:   (*PlaybackService).startFromStopped,
		cmdStop:   (*PlaybackService).halt,
		cmdNext:   (*PlaybackService).advance,
		cmdSelect: (*PlaybackService).jump,
	},
	domain.StatePlaying: {
		cmdPlay:   (*PlaybackService).pause,
		cmdStop:   (*PlaybackService).halt,
		cmdNext:   (*PlaybackService).advance,
		cmdSelect: (*PlaybackService).jump,
	},
	domain.StatePaused: {
		cmdPlay:   (*PlaybackService).resume,
		cmdStop:   (*PlaybackService).halt,
		cmdNext:   (*PlaybackService).advance,
		cmdSelect: (*PlaybackService).jump,
	},
}

// PlaybackService is the playback controller. It owns the playlist, the
// playback state and the runtime info of the loaded track, and drives the
// audio engine in response to user commands.
//
// Engine and metadata failures are logged and published as TrackErrorEvent;
// they never stop a transition from completing.
//
// Not safe for concurrent use: all calls come from the UI thread.
type PlaybackService struct {
	// Dependencies (injected)
	logger *slog.Logger
	engine ports.AudioEngine
	meta   ports.MetadataReader
	bus    ports.EventBus

	// State
	playlist *domain.Playlist
	state    domain.PlaybackState
	info     domain.TrackRuntimeInfo
	volume   int
}

// NewPlaybackService creates a new playback controller with an empty playlist.
func NewPlaybackService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	meta ports.MetadataReader,
	bus ports.EventBus,
) *PlaybackService {
	logger.Debug("playback service initialized")

	return &PlaybackService{
		logger:   logger,
		engine:   engine,
		meta:     meta,
		bus:      bus,
		playlist: domain.NewPlaylist(nil),
		state:    domain.StateStopped,
		info:     placeholderInfo(),
		volume:   DefaultVolume,
	}
}

// Play toggles playback: it starts from Stopped, pauses while Playing and
// resumes while Paused. Only the resume keeps the loaded track; starting from
// Stopped loads the selected track again, because Stop releases the engine's
// decoder, so duration and art are read afresh.
func (s *PlaybackService) Play() error {
	return s.dispatch(cmdPlay, 0)
}

// Stop halts the engine from any state. The selection is kept.
func (s *PlaybackService) Stop() error {
	return s.dispatch(cmdStop, 0)
}

// Next moves to the following track, wrapping after the last, and plays it.
// It does nothing on an empty playlist.
func (s *PlaybackService) Next() error {
	return s.dispatch(cmdNext, 0)
}

// Select plays the track at index.
// It returns domain.ErrInvalidIndex, changing nothing, when index is out of range.
func (s *PlaybackService) Select(index int) error {
	return s.dispatch(cmdSelect, index)
}

func (s *PlaybackService) dispatch(cmd command, arg int) error {
	from, index := s.state, s.playlist.CurrentIndex()

	to, err := transitions[from][cmd](s, arg)
	if err != nil {
		return err
	}
	s.state = to

	if from != to || index != s.playlist.CurrentIndex() {
		s.logger.Debug("playback transition",
			slog.String("command", cmd.String()),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
			slog.Int("index", s.playlist.CurrentIndex()))
		s.bus.Publish(domain.NewPlaybackStateChangedEvent(from, to, s.playlist.CurrentIndex()))
	}
	return nil
}

// Transitions

func (s *PlaybackService) startFromStopped(int) (domain.PlaybackState, error) {
	if s.playlist.IsEmpty() {
		return domain.StateStopped, nil
	}
	if !s.playlist.HasSelection() {
		if err := s.playlist.Select(0); err != nil {
			return domain.StateStopped, err
		}
	}
	return s.loadAndStart(), nil
}

func (s *PlaybackService) halt(int) (domain.PlaybackState, error) {
	if err := s.engine.Stop(); err != nil {
		s.reportEngineError("stop", err)
	}
	return domain.StateStopped, nil
}

func (s *PlaybackService) pause(int) (domain.PlaybackState, error) {
	if err := s.engine.Pause(); err != nil {
		s.reportEngineError("pause", err)
	}
	return domain.StatePaused, nil
}

func (s *PlaybackService) resume(int) (domain.PlaybackState, error) {
	if err := s.engine.Play(); err != nil {
		s.reportEngineError("resume", err)
	}
	return domain.StatePlaying, nil
}

func (s *PlaybackService) advance(int) (domain.PlaybackState, error) {
	if err := s.playlist.Advance(); err != nil {
		if errors.Is(err, domain.ErrPlaylistEmpty) {
			return s.state, nil
		}
		return s.state, err
	}
	return s.loadAndStart(), nil
}

func (s *PlaybackService) jump(index int) (domain.PlaybackState, error) {
	if err := s.playlist.Select(index); err != nil {
		return s.state, fmt.Errorf("select %d of %d: %w", index, s.playlist.Len(), err)
	}
	return s.loadAndStart(), nil
}

// loadAndStart loads the selected track and starts it. The result is always Playing.
func (s *PlaybackService) loadAndStart() domain.PlaybackState {
	if s.loadCurrent() {
		if err := s.engine.Play(); err != nil {
			s.reportEngineError("play", err)
		}
	}
	return domain.StatePlaying
}

// loadCurrent derives the runtime info of the selected track and hands the file
// to the engine. It reports whether the engine accepted the file.
func (s *PlaybackService) loadCurrent() bool {
	track, ok := s.playlist.Current()
	if !ok {
		return false
	}
	log := s.logger.With(slog.String("track", track.Path))

	info := domain.TrackRuntimeInfo{}
	if seconds, err := s.meta.Duration(track.Path); err != nil {
		log.Debug("duration unavailable", slog.Any("error", err))
	} else {
		info.DurationSeconds = max(0, seconds)
	}

	art, err := s.meta.EmbeddedArt(track.Path)
	if err != nil && !errors.Is(err, domain.ErrNoEmbeddedArt) {
		log.Debug("album art unavailable", slog.Any("error", err))
	}
	var decoded bool
	info.AlbumArt, decoded = imaging.AlbumArt(art)
	info.ArtPlaceholder = !decoded

	s.info = info

	loaded := true
	if err := s.engine.Load(track.Path); err != nil {
		s.reportEngineError("load", err)
		loaded = false
	}

	s.bus.Publish(domain.NewTrackLoadedEvent(track, s.playlist.CurrentIndex(), info))
	return loaded
}

func (s *PlaybackService) reportEngineError(op string, err error) {
	track, _ := s.playlist.Current()
	s.logger.Warn("audio engine call failed",
		slog.String("op", op),
		slog.String("track", track.Path),
		slog.Any("error", err))
	s.bus.Publish(domain.NewTrackErrorEvent(track, err))
}

// SetVolume applies level (clamped to 0-100) as linear gain level/100.
func (s *PlaybackService) SetVolume(level int) error {
	level = clampVolume(level)
	s.volume = level
	gain := float64(level) / 100

	s.bus.Publish(domain.NewVolumeChangedEvent(level, gain))

	if err := s.engine.SetVolume(gain); err != nil {
		s.logger.Warn("failed to set volume", slog.Int("level", level), slog.Any("error", err))
		return err
	}
	return nil
}

// ReplacePlaylist stops playback and installs tracks with nothing selected.
func (s *PlaybackService) ReplacePlaylist(folder string, tracks []domain.Track) {
	if s.state != domain.StateStopped {
		if err := s.dispatch(cmdStop, 0); err != nil {
			s.logger.Warn("failed to stop before rescan", slog.Any("error", err))
		}
	} else if err := s.engine.Stop(); err != nil {
		s.logger.Debug("engine stop before rescan failed", slog.Any("error", err))
	}

	s.playlist.Replace(tracks)
	s.info = placeholderInfo()

	s.logger.Info("playlist replaced", slog.String("folder", folder), slog.Int("tracks", len(tracks)))
	s.bus.Publish(domain.NewPlaylistUpdatedEvent(folder, s.playlist.Tracks()))
}

// Shutdown stops the engine. The engine itself is owned by the caller.
func (s *PlaybackService) Shutdown() error {
	return s.engine.Stop()
}

// Accessors

// State returns the current playback state.
func (s *PlaybackService) State() domain.PlaybackState {
	return s.state
}

// CurrentIndex returns the playlist cursor, domain.NoSelection when idle.
func (s *PlaybackService) CurrentIndex() int {
	return s.playlist.CurrentIndex()
}

// CurrentTrack returns the selected track.
func (s *PlaybackService) CurrentTrack() (domain.Track, bool) {
	return s.playlist.Current()
}

// Tracks returns a copy of the playlist.
func (s *PlaybackService) Tracks() []domain.Track {
	return s.playlist.Tracks()
}

// RuntimeInfo returns what was derived from the last loaded track.
func (s *PlaybackService) RuntimeInfo() domain.TrackRuntimeInfo {
	return s.info
}

// Volume returns the volume level (0-100).
func (s *PlaybackService) Volume() int {
	return s.volume
}

func placeholderInfo() domain.TrackRuntimeInfo {
	return domain.TrackRuntimeInfo{
		AlbumArt:       imaging.Placeholder(imaging.ArtSize, imaging.ArtSize),
		ArtPlaceholder: true,
	}
}
