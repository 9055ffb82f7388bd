// Package memory provides repositories backed by the toolkit's preferences store.
package memory

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// Preference keys.
const (
	keyVolume      = "preferences.volume"
	keyTheme       = "preferences.theme"
	keyMusicFolder = "preferences.music_folder"
)

// PreferencesRepository implements ports.PreferencesRepository using Fyne preferences.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.App.Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// Volume retrieves the saved volume level.
func (r *PreferencesRepository) Volume(fallback int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.IntWithFallback(keyVolume, fallback)
}

// SetVolume persists the volume level.
func (r *PreferencesRepository) SetVolume(level int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetInt(keyVolume, level)
}

// Theme retrieves the saved theme name.
func (r *PreferencesRepository) Theme() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.String(keyTheme)
}

// SetTheme persists the theme name.
func (r *PreferencesRepository) SetTheme(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyTheme, name)
}

// MusicFolder retrieves the saved music folder.
func (r *PreferencesRepository) MusicFolder(fallback string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.StringWithFallback(keyMusicFolder, fallback)
}

// SetMusicFolder persists the music folder.
func (r *PreferencesRepository) SetMusicFolder(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyMusicFolder, path)
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue(keyVolume)
	r.prefs.RemoveValue(keyTheme)
	r.prefs.RemoveValue(keyMusicFolder)
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
