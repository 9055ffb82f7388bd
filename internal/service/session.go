package service

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// Session is the player's single owner of mutable state: the playlist and
// playback state (through the controller), the theme cursor (through the
// renderer) and the music folder. The UI shell talks to the session only.
//
// Not safe for concurrent use: all calls come from the UI thread.
type Session struct {
	logger   *slog.Logger
	playback *PlaybackService
	scanner  *PlaylistService
	themes   *ThemeService
	prefs    *PreferenceService

	folder string
}

// NewSession creates a session over the given services.
func NewSession(
	logger *slog.Logger,
	playback *PlaybackService,
	scanner *PlaylistService,
	themes *ThemeService,
	prefs *PreferenceService,
) *Session {
	return &Session{
		logger:   logger,
		playback: playback,
		scanner:  scanner,
		themes:   themes,
		prefs:    prefs,
	}
}

// Restore applies the saved volume and theme and scans the saved music folder.
func (s *Session) Restore() {
	if err := s.playback.SetVolume(s.prefs.Volume()); err != nil {
		s.logger.Warn("failed to restore volume", slog.Any("error", err))
	}

	if err := s.restoreTheme(s.prefs.Theme()); err != nil {
		s.logger.Warn("no theme applied", slog.Any("error", err))
	}

	s.Rescan(s.prefs.MusicFolder())
}

func (s *Session) restoreTheme(saved string) error {
	if saved != "" {
		err := s.themes.ApplyByName(saved)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrThemeNotFound) {
			return err
		}
		s.logger.Info("saved theme no longer exists", slog.String("theme", saved))
	}
	return s.themes.ApplyCurrent()
}

// Rescan scans folder and replaces the playlist, stopping playback and
// clearing the selection.
func (s *Session) Rescan(folder string) []domain.Track {
	s.folder = folder
	tracks := s.scanner.Scan(folder)
	s.playback.ReplacePlaylist(folder, tracks)
	return tracks
}

// OpenFolder makes folder the music folder, remembers it and rescans.
func (s *Session) OpenFolder(folder string) error {
	if err := s.prefs.SetMusicFolder(folder); err != nil {
		return err
	}
	s.Rescan(folder)
	return nil
}

// RefreshIfIdle rescans the music folder while playback is stopped and the
// folder content changed. It reports whether the playlist was replaced.
func (s *Session) RefreshIfIdle() bool {
	if s.playback.State() != domain.StateStopped {
		return false
	}

	tracks := s.scanner.Scan(s.folder)
	if slices.Equal(tracks, s.playback.Tracks()) {
		return false
	}

	s.logger.Debug("music folder changed, refreshing", slog.String("folder", s.folder))
	s.playback.ReplacePlaylist(s.folder, tracks)
	return true
}

// Play runs the play/pause command.
func (s *Session) Play() error {
	return s.playback.Play()
}

// Stop halts playback.
func (s *Session) Stop() error {
	return s.playback.Stop()
}

// Next advances to the next track, wrapping after the last one.
func (s *Session) Next() error {
	return s.playback.Next()
}

// SelectTrack loads and plays the track at index.
func (s *Session) SelectTrack(index int) error {
	return s.playback.Select(index)
}

// MusicFolder returns the folder of the current playlist.
func (s *Session) MusicFolder() string {
	return s.folder
}

// SetVolume applies and remembers the volume level.
func (s *Session) SetVolume(level int) {
	if err := s.playback.SetVolume(level); err != nil {
		s.logger.Warn("failed to apply volume", slog.Any("error", err))
	}
	s.prefs.SetVolume(s.playback.Volume())
}

// CycleTheme applies the next theme and remembers it.
func (s *Session) CycleTheme() error {
	if err := s.themes.Cycle(); err != nil {
		return err
	}
	return s.rememberTheme()
}

// SelectTheme applies the named theme and remembers it.
func (s *Session) SelectTheme(name string) error {
	if err := s.themes.ApplyByName(name); err != nil {
		return err
	}
	return s.rememberTheme()
}

func (s *Session) rememberTheme() error {
	desc, err := s.themes.store.Current()
	if err != nil {
		return err
	}
	return s.prefs.SetTheme(desc.Name)
}

// ThemeNames lists the themes in cycling order.
func (s *Session) ThemeNames() []string {
	return s.themes.Names()
}

// Playback returns the playback controller.
func (s *Session) Playback() *PlaybackService {
	return s.playback
}
