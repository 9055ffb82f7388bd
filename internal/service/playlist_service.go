package service

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// supportedExts are the file extensions the audio engine can decode, lower case.
var supportedExts = []string{".mp3", ".wav", ".ogg", ".flac"}

// PlaylistService builds track lists from a music folder.
// It only reads the filesystem; installing the result is the controller's job.
type PlaylistService struct {
	logger *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(logger *slog.Logger) *PlaylistService {
	return &PlaylistService{logger: logger}
}

// Scan lists the supported audio files directly inside folder, in directory order.
// Subfolders are not descended into and are skipped even when their names carry
// an audio extension. A missing or unreadable folder yields an empty list.
func (s *PlaylistService) Scan(folder string) []domain.Track {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("music folder does not exist", slog.String("folder", folder))
		} else {
			s.logger.Warn("failed to read music folder", slog.String("folder", folder), slog.Any("error", err))
		}
		return []domain.Track{}
	}

	tracks := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !s.IsSupported(entry.Name()) {
			continue
		}
		tracks = append(tracks, domain.NewTrack(filepath.Join(folder, entry.Name())))
	}

	s.logger.Debug("folder scanned",
		slog.String("folder", folder),
		slog.Int("entries", len(entries)),
		slog.Int("tracks", len(tracks)))

	return tracks
}

// IsSupported reports whether path has a playable extension, ignoring case.
func (s *PlaylistService) IsSupported(path string) bool {
	return slices.Contains(supportedExts, strings.ToLower(filepath.Ext(path)))
}

// SupportedFormats returns the list of supported file extensions.
func (s *PlaylistService) SupportedFormats() []string {
	return slices.Clone(supportedExts)
}
