package service

import (
	"log/slog"
	"strings"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// DefaultVolume is the volume slider position on first run.
const DefaultVolume = 70

// PreferenceService manages the settings that survive restarts:
// volume, last applied theme and music folder.
type PreferenceService struct {
	logger     *slog.Logger
	repository ports.PreferencesRepository

	defaultFolder string
}

// NewPreferenceService creates a new preference service.
// defaultFolder is returned by MusicFolder until the user picks another one.
func NewPreferenceService(
	logger *slog.Logger,
	repository ports.PreferencesRepository,
	defaultFolder string,
) *PreferenceService {
	logger.Debug("preference service initialized", slog.String("default_folder", defaultFolder))

	return &PreferenceService{
		logger:        logger,
		repository:    repository,
		defaultFolder: defaultFolder,
	}
}

// Volume returns the saved volume level, clamped to 0-100.
func (s *PreferenceService) Volume() int {
	return clampVolume(s.repository.Volume(DefaultVolume))
}

// SetVolume saves the volume level, clamped to 0-100.
func (s *PreferenceService) SetVolume(level int) {
	s.repository.SetVolume(clampVolume(level))
}

// Theme returns the last applied theme name, "" when none was saved.
func (s *PreferenceService) Theme() string {
	return s.repository.Theme()
}

// SetTheme saves the theme name.
func (s *PreferenceService) SetTheme(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("theme", name, "theme name cannot be empty")
	}
	s.repository.SetTheme(name)
	return nil
}

// MusicFolder returns the folder to scan.
func (s *PreferenceService) MusicFolder() string {
	return s.repository.MusicFolder(s.defaultFolder)
}

// SetMusicFolder saves the folder to scan.
func (s *PreferenceService) SetMusicFolder(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.NewValidationError("music_folder", path, "folder cannot be empty")
	}
	s.repository.SetMusicFolder(path)
	s.logger.Debug("music folder saved", slog.String("folder", path))
	return nil
}

func clampVolume(level int) int {
	return max(0, min(100, level))
}
