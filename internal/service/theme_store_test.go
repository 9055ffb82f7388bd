package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func colorTheme(name, bg string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "bg": {"type": "color", "value": %q, "mode": "stretch"},
  "ui": {"primary_text": "#ffffff", "button_bg": "#3c3c3c", "accent": "#007acc"},
  "buttons": {}
}`, name, bg)
}

func newThemeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "neon.json", colorTheme("Neon", "#000000"))
	writeFile(t, dir, "dark.json", colorTheme("Dark", "#1e1e1e"))
	writeFile(t, dir, "light.json", colorTheme("Light", "#f0f0f0"))
	return dir
}

func TestThemeStore_LoadAll_SortsNames(t *testing.T) {
	store := NewThemeStore(logger.NewTestLogger())

	n := store.LoadAll(newThemeDir(t))

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, []string{"Dark", "Light", "Neon"}, store.Names())

	dark, ok := store.Get("Dark")
	require.True(t, ok)
	assert.Equal(t, "#1e1e1e", dark.Background.Value)
	assert.Equal(t, domain.BackgroundColor, dark.Background.Kind)
	assert.Equal(t, "#007acc", dark.Colors.Accent)
	assert.Contains(t, dark.Source, "dark.json")
}

func TestThemeStore_NextWraps(t *testing.T) {
	store := NewThemeStore(logger.NewTestLogger())
	store.LoadAll(newThemeDir(t))

	cur, err := store.Current()
	require.NoError(t, err)
	visited := []string{cur.Name}
	for range 3 {
		next, err := store.Next()
		require.NoError(t, err)
		visited = append(visited, next.Name)
	}

	assert.Equal(t, []string{"Dark", "Light", "Neon", "Dark"}, visited)
}

func TestThemeStore_Empty(t *testing.T) {
	store := NewThemeStore(logger.NewTestLogger())
	assert.Zero(t, store.LoadAll(t.TempDir()))

	_, err := store.Current()
	assert.ErrorIs(t, err, domain.ErrNoThemes)
	_, err = store.Next()
	assert.ErrorIs(t, err, domain.ErrNoThemes)
	_, err = store.Select("Dark")
	assert.ErrorIs(t, err, domain.ErrNoThemes)
}

func TestThemeStore_MissingDirectory(t *testing.T) {
	log, capture := logger.NewCaptureLogger()
	store := NewThemeStore(log)

	assert.Zero(t, store.LoadAll(filepath.Join(t.TempDir(), "missing")))
	assert.Contains(t, capture.String(), "cannot read theme directory")
}

func TestThemeStore_MalformedFilesSkipped(t *testing.T) {
	dir := newThemeDir(t)
	writeFile(t, dir, "broken.json", `{"name": "Broken", "bg": `)
	writeFile(t, dir, "noname.json", `{"bg": {"type": "color", "value": "#000000"}}`)
	writeFile(t, dir, "badkind.json", `{"name": "Weird", "bg": {"type": "gradient", "value": "x"}}`)
	writeFile(t, dir, "badmode.json", `{"name": "Tiled", "bg": {"type": "image", "value": "a.png", "mode": "tile"}}`)
	writeFile(t, dir, "notes.txt", `not a theme`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	log, capture := logger.NewCaptureLogger()
	store := NewThemeStore(log)

	assert.Equal(t, 3, store.LoadAll(dir))
	assert.Equal(t, []string{"Dark", "Light", "Neon"}, store.Names())

	out := capture.String()
	assert.Contains(t, out, "broken.json")
	assert.Contains(t, out, "noname.json")
	assert.Contains(t, out, "badkind.json")
	assert.Contains(t, out, "badmode.json")
	assert.NotContains(t, out, "notes.txt")
}

func TestThemeStore_DefaultsFilledIn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "min.json", `{"name": "Minimal"}`)

	store := NewThemeStore(logger.NewTestLogger())
	require.Equal(t, 1, store.LoadAll(dir))

	desc, _ := store.Get("Minimal")
	assert.Equal(t, domain.BackgroundColor, desc.Background.Kind)
	assert.Equal(t, domain.ModeStretch, desc.Background.Mode)
	assert.Equal(t, domain.DefaultBackground, desc.Background.Value)
}

func TestThemeStore_NameCollisionLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a_dark.json", colorTheme("Dark", "#111111"))
	second := writeFile(t, dir, "b_dark.json", colorTheme("Dark", "#222222"))

	log, capture := logger.NewCaptureLogger()
	store := NewThemeStore(log)

	assert.Equal(t, 1, store.LoadAll(dir))

	dark, _ := store.Get("Dark")
	assert.Equal(t, "#222222", dark.Background.Value)
	assert.Equal(t, second, dark.Source)

	out := capture.String()
	assert.Contains(t, out, "theme name collision")
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)
}

func TestThemeStore_Select(t *testing.T) {
	store := NewThemeStore(logger.NewTestLogger())
	store.LoadAll(newThemeDir(t))

	desc, err := store.Select("Neon")
	require.NoError(t, err)
	assert.Equal(t, "Neon", desc.Name)

	next, _ := store.Next()
	assert.Equal(t, "Dark", next.Name)

	_, err = store.Select("Solarized")
	assert.ErrorIs(t, err, domain.ErrThemeNotFound)
	cur, _ := store.Current()
	assert.Equal(t, "Dark", cur.Name, "failed select keeps the cursor")
}

func TestThemeStore_ReloadKeepsCursor(t *testing.T) {
	dir := newThemeDir(t)
	store := NewThemeStore(logger.NewTestLogger())
	store.LoadAll(dir)
	_, err := store.Select("Light")
	require.NoError(t, err)

	writeFile(t, dir, "aqua.json", colorTheme("Aqua", "#00ffff"))
	store.LoadAll(dir)

	cur, _ := store.Current()
	assert.Equal(t, "Light", cur.Name)
	assert.Equal(t, []string{"Aqua", "Dark", "Light", "Neon"}, store.Names())
}
