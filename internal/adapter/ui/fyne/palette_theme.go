package fyne

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// hoverAlpha is the opacity of the accent tint drawn under hovered widgets.
const hoverAlpha = 0x40

// PaletteTheme is a fyne.Theme whose colours come from the applied theme
// descriptor. Until a palette is set it behaves like the default theme.
type PaletteTheme struct {
	mu      sync.RWMutex
	palette domain.Palette
	set     bool
}

// NewPaletteTheme creates a theme with no palette applied.
func NewPaletteTheme() *PaletteTheme {
	return &PaletteTheme{}
}

// SetPalette replaces the colours. The caller re-applies the theme to the
// app settings so widgets repaint.
func (t *PaletteTheme) SetPalette(p domain.Palette) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.palette = p
	t.set = true
}

// Palette returns the applied palette and whether one was set.
func (t *PaletteTheme) Palette() (domain.Palette, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.palette, t.set
}

// Color returns theme colors
func (t *PaletteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	p, ok := t.Palette()
	if !ok {
		return theme.DefaultTheme().Color(name, variant)
	}

	switch name {
	case theme.ColorNameForeground, theme.ColorNameForegroundOnPrimary:
		return p.Text
	case theme.ColorNameButton, theme.ColorNameInputBackground, theme.ColorNameHeaderBackground:
		return p.ButtonBackground
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection:
		return p.Accent
	case theme.ColorNameHover, theme.ColorNamePressed:
		return withAlpha(p.Accent, hoverAlpha)
	case theme.ColorNameBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return p.Background
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PaletteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PaletteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PaletteTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

var _ fyne.Theme = (*PaletteTheme)(nil)
