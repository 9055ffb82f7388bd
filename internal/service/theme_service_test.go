package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/themetune/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
)

// recordingSurface is a ThemeSurface that logs every call as a string.
type recordingSurface struct {
	ops     []string
	palette domain.Palette
}

func (r *recordingSurface) ClearBackground() { r.ops = append(r.ops, "clear") }

func (r *recordingSurface) FillBackground(c color.Color) {
	r.ops = append(r.ops, "fill:"+hex(c))
}

func (r *recordingSurface) DrawBackgroundImage(img image.Image, mode domain.BackgroundMode) {
	b := img.Bounds()
	r.ops = append(r.ops, fmt.Sprintf("image:%dx%d:%s", b.Dx(), b.Dy(), mode))
}

func (r *recordingSurface) ApplyPalette(p domain.Palette) {
	r.palette = p
	r.ops = append(r.ops, "palette:"+p.String())
}

func (r *recordingSurface) SetThemeLabel(text string) { r.ops = append(r.ops, "label:"+text) }

func (r *recordingSurface) SetButtonSkin(button string, img image.Image) {
	if img == nil {
		r.ops = append(r.ops, "skin:"+button+":default")
		return
	}
	b := img.Bounds()
	r.ops = append(r.ops, fmt.Sprintf("skin:%s:%dx%d", button, b.Dx(), b.Dy()))
}

func (r *recordingSurface) reset() { r.ops = nil }

func hex(c color.Color) string {
	cr, cg, cb, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", cr>>8, cg>>8, cb>>8)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

type themeFixture struct {
	svc     *ThemeService
	store   *ThemeStore
	surface *recordingSurface
	events  *eventRecorder
	root    string
}

func newThemeFixture(t *testing.T) *themeFixture {
	t.Helper()
	log := logger.NewTestLogger()

	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	backgrounds := filepath.Join(root, "backgrounds")
	buttons := filepath.Join(root, "buttons")
	for _, d := range []string{templates, backgrounds, buttons} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}

	writeFile(t, templates, "dark.json", colorTheme("Dark", "#1e1e1e"))
	writeFile(t, templates, "light.json", colorTheme("Light", "#f0f0f0"))
	writeFile(t, templates, "neon.json", colorTheme("Neon", "#000000"))
	writeFile(t, templates, "beach.json", `{
  "name": "Beach",
  "bg": {"type": "image", "value": "beach.png", "mode": "stretch"},
  "ui": {"primary_text": "#111111", "button_bg": "zzz", "accent": ""},
  "buttons": {"play": "big_play.png", "stop": "missing.png", "eject": "e.png"}
}`)
	writeFile(t, templates, "tiny.json", `{
  "name": "Tiny",
  "bg": {"type": "image", "value": "tiny.png", "mode": "center"}
}`)
	writeFile(t, templates, "ghost.json", `{
  "name": "Ghost",
  "bg": {"type": "image", "value": "not-there.png", "mode": "stretch"}
}`)
	writeFile(t, templates, "badhex.json", `{
  "name": "BadHex",
  "bg": {"type": "color", "value": "purple-ish"}
}`)
	writePNG(t, filepath.Join(backgrounds, "beach.png"), 40, 30)
	writePNG(t, filepath.Join(backgrounds, "tiny.png"), 64, 48)
	writePNG(t, filepath.Join(buttons, "big_play.png"), 110, 64)

	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	store := NewThemeStore(log)
	require.Equal(t, 7, store.LoadAll(templates))

	surface := &recordingSurface{}
	svc := NewThemeService(log, store, surface, bus, ThemeServiceConfig{
		BackgroundsDir: backgrounds,
		ButtonsDir:     buttons,
		Width:          900,
		Height:         820,
	})

	return &themeFixture{svc: svc, store: store, surface: surface, events: recordEvents(bus), root: root}
}

func (f *themeFixture) apply(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.svc.ApplyByName(name))
}

func TestThemeService_ApplyColorTheme(t *testing.T) {
	f := newThemeFixture(t)

	f.apply(t, "Dark")

	assert.Equal(t, []string{
		"clear",
		"fill:#1e1e1e",
		"palette:text=#ffffff button=#3c3c3c accent=#007acc bg=#1e1e1e",
		"label:Theme: Dark",
		"skin:play:default",
		"skin:pause:default",
		"skin:stop:default",
		"skin:next:default",
	}, f.surface.ops)

	applied := f.events.ofType(domain.EventThemeApplied)
	require.Len(t, applied, 1)
	assert.Equal(t, "Dark", applied[0].(domain.ThemeAppliedEvent).Name)
}

func TestThemeService_ApplyIsIdempotent(t *testing.T) {
	f := newThemeFixture(t)

	for _, name := range []string{"Dark", "Beach", "Tiny"} {
		f.surface.reset()
		f.apply(t, name)
		first := f.surface.ops

		f.surface.reset()
		f.apply(t, name)

		assert.Equal(t, first, f.surface.ops, name)
	}
}

func TestThemeService_ImageStretchUsesWindowSize(t *testing.T) {
	f := newThemeFixture(t)

	f.apply(t, "Beach")

	assert.Contains(t, f.surface.ops, "image:900x820:stretch")
	assert.NotContains(t, f.surface.ops, "fill:#1e1e1e")
	// Labels sit on black over an image; invalid colours fall back per field.
	assert.Equal(t, "text=#111111 button=#3c3c3c accent=#007acc bg=#000000", f.surface.palette.String())
}

func TestThemeService_ImageCenterKeepsSize(t *testing.T) {
	f := newThemeFixture(t)

	f.apply(t, "Tiny")

	assert.Contains(t, f.surface.ops, "image:64x48:center")
}

func TestThemeService_MissingBackgroundFallsBack(t *testing.T) {
	f := newThemeFixture(t)

	assert.NotPanics(t, func() { f.apply(t, "Ghost") })

	assert.Equal(t, "clear", f.surface.ops[0])
	assert.Equal(t, "fill:#1e1e1e", f.surface.ops[1])
	assert.Contains(t, f.surface.palette.String(), "bg=#1e1e1e", "labels sit on the fallback fill")
	assert.Contains(t, f.surface.ops, "label:Theme: Ghost")
	assert.Len(t, f.events.ofType(domain.EventThemeApplied), 1)
}

func TestThemeService_InvalidFillColourFallsBack(t *testing.T) {
	f := newThemeFixture(t)

	f.apply(t, "BadHex")

	assert.Equal(t, "fill:#1e1e1e", f.surface.ops[1])
}

func TestThemeService_ButtonSkins(t *testing.T) {
	f := newThemeFixture(t)

	f.apply(t, "Beach")

	assert.Contains(t, f.surface.ops, "skin:play:110x64")
	assert.Contains(t, f.surface.ops, "skin:stop:default", "missing skin file keeps the default icon")
	assert.Contains(t, f.surface.ops, "skin:pause:default")
	assert.NotContains(t, fmt.Sprint(f.surface.ops), "eject")

	// A theme without skins restores every default.
	f.surface.reset()
	f.apply(t, "Dark")
	assert.Contains(t, f.surface.ops, "skin:play:default")
}

func TestThemeService_CycleVisitsSortedNamesAndWraps(t *testing.T) {
	f := newThemeFixture(t)
	f.apply(t, "Light")

	var labels []string
	for range 6 {
		f.surface.reset()
		require.NoError(t, f.svc.Cycle())
		labels = append(labels, f.surface.ops[len(f.surface.ops)-5])
	}

	assert.Equal(t, []string{
		"label:Theme: Neon",
		"label:Theme: Tiny",
		"label:Theme: BadHex",
		"label:Theme: Beach",
		"label:Theme: Dark",
		"label:Theme: Ghost",
	}, labels)
}

func TestThemeService_ThreeThemeCycle(t *testing.T) {
	log := logger.NewTestLogger()
	dir := newThemeDir(t)
	store := NewThemeStore(log)
	store.LoadAll(dir)
	surface := &recordingSurface{}
	bus := eventbus.NewSyncEventBus(log)
	defer bus.Close()
	events := recordEvents(bus)
	svc := NewThemeService(log, store, surface, bus, ThemeServiceConfig{Width: 900, Height: 820})

	require.NoError(t, svc.ApplyCurrent())
	for range 3 {
		require.NoError(t, svc.Cycle())
	}

	var names []string
	for _, e := range events.ofType(domain.EventThemeApplied) {
		names = append(names, e.(domain.ThemeAppliedEvent).Name)
	}
	assert.Equal(t, []string{"Dark", "Light", "Neon", "Dark"}, names)
}

func TestThemeService_EmptyStore(t *testing.T) {
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus(log)
	defer bus.Close()
	surface := &recordingSurface{}
	svc := NewThemeService(log, NewThemeStore(log), surface, bus, ThemeServiceConfig{})

	assert.ErrorIs(t, svc.Cycle(), domain.ErrNoThemes)
	assert.ErrorIs(t, svc.ApplyCurrent(), domain.ErrNoThemes)
	assert.ErrorIs(t, svc.ApplyByName("Dark"), domain.ErrNoThemes)
	assert.Empty(t, surface.ops)
}

func TestThemeService_ApplyByUnknownName(t *testing.T) {
	f := newThemeFixture(t)

	assert.ErrorIs(t, f.svc.ApplyByName("Solarized"), domain.ErrThemeNotFound)
	assert.Empty(t, f.surface.ops)
}
