package ports

import (
	"image"
	"image/color"

	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// ThemeSurface is the part of the window a theme renders onto.
// Implementations are called on the UI thread only.
type ThemeSurface interface {
	// ClearBackground removes any fill or image drawn by a previous theme.
	ClearBackground()

	// FillBackground paints the window background with a solid colour.
	FillBackground(c color.Color)

	// DrawBackgroundImage places img behind the window content.
	// ModeStretch images arrive already resized to the window size.
	DrawBackgroundImage(img image.Image, mode domain.BackgroundMode)

	// ApplyPalette recolours text, buttons and the track list.
	ApplyPalette(palette domain.Palette)

	// SetThemeLabel sets the caption of the theme button.
	SetThemeLabel(text string)

	// SetButtonSkin replaces the icon of a transport button ("play", "pause", "stop", "next").
	// A nil image restores the default icon.
	SetButtonSkin(button string, img image.Image)
}

// Dispatcher runs fn on the UI thread.
type Dispatcher func(fn func())
