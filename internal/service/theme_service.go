package service

import (
	"image"
	"image/color"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/imaging"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// SkinnableButtons are the transport buttons a theme may re-skin.
var SkinnableButtons = []string{"play", "pause", "stop", "next"}

// ThemeServiceConfig locates theme assets and the size of the surface.
type ThemeServiceConfig struct {
	// BackgroundsDir holds the images named by "bg.value"
	BackgroundsDir string

	// ButtonsDir holds the images named in "buttons"
	ButtonsDir string

	// Width and Height are the window size stretched backgrounds are resized to
	Width, Height int
}

// ThemeService renders theme descriptors onto the window and cycles through
// the themes in the store.
//
// Rendering never fails: missing or broken assets fall back to default colours
// and are only logged.
type ThemeService struct {
	logger  *slog.Logger
	store   *ThemeStore
	surface ports.ThemeSurface
	bus     ports.EventBus
	config  ThemeServiceConfig
}

// NewThemeService creates a theme renderer over store.
func NewThemeService(
	logger *slog.Logger,
	store *ThemeStore,
	surface ports.ThemeSurface,
	bus ports.EventBus,
	config ThemeServiceConfig,
) *ThemeService {
	return &ThemeService{
		logger:  logger,
		store:   store,
		surface: surface,
		bus:     bus,
		config:  config,
	}
}

// Apply renders desc from scratch: background, palette, theme label and button skins.
// Calling it twice with the same descriptor produces the same surface state.
func (s *ThemeService) Apply(desc domain.ThemeDescriptor) {
	log := s.logger.With(slog.String("theme", desc.Name))

	s.surface.ClearBackground()
	behindText := s.renderBackground(log, desc.Background)

	palette := domain.Palette{
		Text:             imaging.HexOr(desc.Colors.PrimaryText, domain.DefaultPrimaryText),
		ButtonBackground: imaging.HexOr(desc.Colors.ButtonBackground, domain.DefaultButtonBackground),
		Accent:           imaging.HexOr(desc.Colors.Accent, domain.DefaultAccent),
		Background:       behindText,
	}
	s.surface.ApplyPalette(palette)
	s.surface.SetThemeLabel("Theme: " + desc.Name)

	s.applyButtonSkins(log, desc.ButtonSkins)

	log.Debug("theme applied", slog.String("palette", palette.String()))
	s.bus.Publish(domain.NewThemeAppliedEvent(desc.Name, palette))
}

// renderBackground draws the background and returns the colour text labels sit on:
// the fill colour for colour themes, black over an image. An image theme whose
// file is unavailable is drawn as the default fill, and labels sit on that fill.
func (s *ThemeService) renderBackground(log *slog.Logger, bg domain.Background) color.Color {
	fallback := imaging.HexOr(domain.DefaultBackground, domain.DefaultBackground)

	switch bg.Kind {
	case domain.BackgroundImage:
		path := filepath.Join(s.config.BackgroundsDir, bg.Value)
		img, err := imaging.LoadFile(path)
		if err != nil {
			log.Warn("background image unavailable, using default colour",
				slog.String("file", path), slog.Any("error", err))
			s.surface.FillBackground(fallback)
			return fallback
		}
		if bg.Mode == domain.ModeStretch {
			img = imaging.Stretch(img, s.config.Width, s.config.Height)
		}
		s.surface.DrawBackgroundImage(img, bg.Mode)
		return color.Black

	default:
		fill := imaging.HexOr(bg.Value, domain.DefaultBackground)
		s.surface.FillBackground(fill)
		return fill
	}
}

func (s *ThemeService) applyButtonSkins(log *slog.Logger, skins map[string]string) {
	for _, name := range slices.Sorted(maps.Keys(skins)) {
		if !slices.Contains(SkinnableButtons, name) {
			log.Debug("ignoring skin for unknown button", slog.String("button", name))
		}
	}

	for _, name := range SkinnableButtons {
		var img image.Image
		if file, ok := skins[name]; ok && file != "" {
			path := filepath.Join(s.config.ButtonsDir, file)
			loaded, err := imaging.LoadFile(path)
			if err != nil {
				log.Warn("button skin unavailable", slog.String("button", name), slog.String("file", path), slog.Any("error", err))
			} else {
				img = loaded
			}
		}
		s.surface.SetButtonSkin(name, img)
	}
}

// Cycle advances to the next theme and applies it.
func (s *ThemeService) Cycle() error {
	desc, err := s.store.Next()
	if err != nil {
		return err
	}
	s.Apply(desc)
	return nil
}

// ApplyCurrent applies the theme under the store's cursor.
func (s *ThemeService) ApplyCurrent() error {
	desc, err := s.store.Current()
	if err != nil {
		return err
	}
	s.Apply(desc)
	return nil
}

// ApplyByName moves the cursor to name and applies that theme.
func (s *ThemeService) ApplyByName(name string) error {
	desc, err := s.store.Select(name)
	if err != nil {
		return err
	}
	s.Apply(desc)
	return nil
}

// Names lists the available themes in cycling order.
func (s *ThemeService) Names() []string {
	return s.store.Names()
}
