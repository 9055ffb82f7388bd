package domain

import (
	"fmt"
	"image/color"
)

// BackgroundKind says whether a theme background is a flat colour or an image file.
type BackgroundKind string

const (
	BackgroundColor BackgroundKind = "color"
	BackgroundImage BackgroundKind = "image"
)

// BackgroundMode controls how a background image is laid out.
type BackgroundMode string

const (
	// ModeStretch resizes the image to the window size
	ModeStretch BackgroundMode = "stretch"

	// ModeCenter keeps the original size, centred
	ModeCenter BackgroundMode = "center"
)

// Default colours used when a descriptor omits a value or carries an invalid one.
const (
	DefaultBackground       = "#1e1e1e"
	DefaultPrimaryText      = "#ffffff"
	DefaultButtonBackground = "#3c3c3c"
	DefaultAccent           = "#007acc"
)

// Background is the "bg" block of a theme descriptor.
type Background struct {
	Kind  BackgroundKind `json:"type"`
	Value string         `json:"value"`
	Mode  BackgroundMode `json:"mode"`
}

// ThemeColors is the "ui" block of a theme descriptor.
type ThemeColors struct {
	PrimaryText      string `json:"primary_text"`
	ButtonBackground string `json:"button_bg"`
	Accent           string `json:"accent"`
}

// ThemeDescriptor is one declarative theme file.
// Descriptors are read-only after loading.
type ThemeDescriptor struct {
	Name        string            `json:"name"`
	Background  Background        `json:"bg"`
	Colors      ThemeColors       `json:"ui"`
	ButtonSkins map[string]string `json:"buttons,omitempty"`

	// Source is the file the descriptor was read from
	Source string `json:"-"`
}

// Normalize fills in the defaults the descriptor format allows to be omitted.
func (d *ThemeDescriptor) Normalize() {
	if d.Background.Kind == "" {
		d.Background.Kind = BackgroundColor
	}
	if d.Background.Mode == "" {
		d.Background.Mode = ModeStretch
	}
	if d.Background.Kind == BackgroundColor && d.Background.Value == "" {
		d.Background.Value = DefaultBackground
	}
}

// Validate checks the fields a renderer cannot work around.
func (d ThemeDescriptor) Validate() error {
	if d.Name == "" {
		return NewValidationError("name", d.Name, "theme name is required")
	}
	switch d.Background.Kind {
	case BackgroundColor, BackgroundImage:
	default:
		return NewValidationError("bg.type", d.Background.Kind, "must be \"color\" or \"image\"")
	}
	switch d.Background.Mode {
	case ModeStretch, ModeCenter:
	default:
		return NewValidationError("bg.mode", d.Background.Mode, "must be \"stretch\" or \"center\"")
	}
	if d.Background.Kind == BackgroundImage && d.Background.Value == "" {
		return NewValidationError("bg.value", d.Background.Value, "image background needs a file name")
	}
	return nil
}

// Palette is a descriptor's colours resolved for the UI surface.
type Palette struct {
	// Text colours labels, list entries and button captions
	Text color.Color

	// ButtonBackground fills buttons and the track list
	ButtonBackground color.Color

	// Accent highlights focus, selection and slider fill
	Accent color.Color

	// Background sits behind labels that have no surface of their own
	Background color.Color
}

// String renders the palette as hex triples for logging.
func (p Palette) String() string {
	return fmt.Sprintf("text=%s button=%s accent=%s bg=%s",
		hexOf(p.Text), hexOf(p.ButtonBackground), hexOf(p.Accent), hexOf(p.Background))
}

func hexOf(c color.Color) string {
	if c == nil {
		return "<nil>"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
