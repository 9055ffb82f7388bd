// Package ports define repository interfaces for data persistence abstraction.
package ports

// PreferencesRepository handles user settings that survive restarts.
// Playlists are never persisted; only these scalar settings are.
//
// Thread-safety: Implementations must be thread-safe.
type PreferencesRepository interface {
	// Volume returns the saved volume level (0-100), or fallback when unset.
	Volume(fallback int) int

	// SetVolume saves the volume level.
	SetVolume(level int)

	// Theme returns the saved theme name, or "" when unset.
	Theme() string

	// SetTheme saves the theme name.
	SetTheme(name string)

	// MusicFolder returns the saved music folder, or fallback when unset.
	MusicFolder(fallback string) string

	// SetMusicFolder saves the music folder.
	SetMusicFolder(path string)
}
