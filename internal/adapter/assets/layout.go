// Package assets prepares the on-disk layout the player reads themes and skins from.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/imaging"
)

// Subdirectories of the assets root.
const (
	TemplatesDir   = "templates"
	BackgroundsDir = "backgrounds"
	ButtonsDir     = "buttons"
)

// Layout resolves the asset directories under one root.
type Layout struct {
	Root        string
	Templates   string
	Backgrounds string
	Buttons     string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{
		Root:        root,
		Templates:   filepath.Join(root, TemplatesDir),
		Backgrounds: filepath.Join(root, BackgroundsDir),
		Buttons:     filepath.Join(root, ButtonsDir),
	}
}

// DefaultRoot returns <user config dir>/themetune, falling back to the working directory.
func DefaultRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "themetune"
	}
	return filepath.Join(dir, "themetune")
}

// sampleThemes are written on first run. Existing files are never overwritten.
var sampleThemes = map[string]domain.ThemeDescriptor{
	"dark.json": {
		Name:       "Dark",
		Background: domain.Background{Kind: domain.BackgroundColor, Value: domain.DefaultBackground, Mode: domain.ModeStretch},
		Colors: domain.ThemeColors{
			PrimaryText:      domain.DefaultPrimaryText,
			ButtonBackground: domain.DefaultButtonBackground,
			Accent:           domain.DefaultAccent,
		},
	},
	"light.json": {
		Name:       "Light",
		Background: domain.Background{Kind: domain.BackgroundColor, Value: "#f3f3f3", Mode: domain.ModeStretch},
		Colors: domain.ThemeColors{
			PrimaryText:      "#1e1e1e",
			ButtonBackground: "#dcdcdc",
			Accent:           "#005fb8",
		},
	},
	"neon.json": {
		Name:       "Neon",
		Background: domain.Background{Kind: domain.BackgroundColor, Value: "#0d0221", Mode: domain.ModeStretch},
		Colors: domain.ThemeColors{
			PrimaryText:      "#f8f8f2",
			ButtonBackground: "#261447",
			Accent:           "#ff2a6d",
		},
		ButtonSkins: map[string]string{
			"play":  "play.png",
			"pause": "pause.png",
			"stop":  "stop.png",
		},
	},
}

// Ensure creates the directory layout and writes the sample themes and button
// images that are missing. Only a failure to create a directory is returned;
// a sample that cannot be written is logged and skipped.
func (l Layout) Ensure(logger *slog.Logger) error {
	logger = logger.With(slog.String("component", "assets"))

	for _, dir := range []string{l.Templates, l.Backgrounds, l.Buttons} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create asset directory %s: %w", dir, err)
		}
	}

	for file, desc := range sampleThemes {
		path := filepath.Join(l.Templates, file)
		if err := writeIfAbsent(path, func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(desc)
		}); err != nil {
			logger.Warn("cannot write sample theme", slog.String("file", path), slog.Any("error", err))
		}
	}

	for _, name := range imaging.GlyphNames() {
		img, _ := imaging.ButtonGlyph(name)
		path := filepath.Join(l.Buttons, name+".png")
		if err := writeIfAbsent(path, func(f *os.File) error {
			return png.Encode(f, img)
		}); err != nil {
			logger.Warn("cannot write button image", slog.String("file", path), slog.Any("error", err))
		}
	}

	logger.Debug("asset layout ready", slog.String("root", l.Root))
	return nil
}

// writeIfAbsent creates path exclusively and fills it with write.
// An existing file is left untouched and is not an error.
func writeIfAbsent(path string, write func(f *os.File) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
