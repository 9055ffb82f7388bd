package service

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tejashwikalptaru/themetune/internal/domain"
)

// ThemeStore holds the theme descriptors read from the templates directory and
// a cursor over their names in sorted order.
//
// The store is read-only after LoadAll and is only touched from the UI thread.
type ThemeStore struct {
	logger *slog.Logger

	themes map[string]domain.ThemeDescriptor
	names  []string
	cursor int
}

// NewThemeStore creates an empty theme store.
func NewThemeStore(logger *slog.Logger) *ThemeStore {
	return &ThemeStore{
		logger: logger,
		themes: make(map[string]domain.ThemeDescriptor),
	}
}

// LoadAll replaces the store's content with every *.json descriptor in dir and
// returns how many themes were loaded.
//
// Files that fail to parse or validate are logged and skipped. When two files
// declare the same name the later file in directory order wins, with a warning
// naming both. The cursor stays on the current theme when it survives the reload.
func (s *ThemeStore) LoadAll(dir string) int {
	previous, _ := s.currentName()

	s.themes = make(map[string]domain.ThemeDescriptor)
	s.names = nil
	s.cursor = 0

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("cannot read theme directory", slog.String("dir", dir), slog.Any("error", err))
		return 0
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		desc, err := s.loadFile(path)
		if err != nil {
			s.logger.Warn("skipping theme descriptor", slog.String("file", path), slog.Any("error", err))
			continue
		}

		if existing, ok := s.themes[desc.Name]; ok {
			s.logger.Warn("theme name collision, later file wins",
				slog.String("name", desc.Name),
				slog.String("replaced", existing.Source),
				slog.String("winner", desc.Source))
		}
		s.themes[desc.Name] = desc
	}

	for name := range s.themes {
		s.names = append(s.names, name)
	}
	slices.Sort(s.names)

	if i := slices.Index(s.names, previous); i >= 0 {
		s.cursor = i
	}

	s.logger.Info("themes loaded", slog.String("dir", dir), slog.Any("names", s.names))
	return len(s.names)
}

func (s *ThemeStore) loadFile(path string) (domain.ThemeDescriptor, error) {
	var desc domain.ThemeDescriptor

	data, err := os.ReadFile(path)
	if err != nil {
		return desc, domain.NewThemeError("load", filepath.Base(path), "cannot read file", err)
	}
	if err := json.Unmarshal(data, &desc); err != nil {
		return desc, domain.NewThemeError("load", filepath.Base(path), "invalid JSON", err)
	}

	desc.Normalize()
	if err := desc.Validate(); err != nil {
		return desc, domain.NewThemeError("load", filepath.Base(path), "invalid descriptor", err)
	}
	desc.Source = path
	return desc, nil
}

// Len returns the number of loaded themes.
func (s *ThemeStore) Len() int {
	return len(s.names)
}

// Names returns the theme names in cycling order.
func (s *ThemeStore) Names() []string {
	return slices.Clone(s.names)
}

// Get returns the descriptor registered under name.
func (s *ThemeStore) Get(name string) (domain.ThemeDescriptor, bool) {
	desc, ok := s.themes[name]
	return desc, ok
}

// Current returns the descriptor under the cursor.
func (s *ThemeStore) Current() (domain.ThemeDescriptor, error) {
	name, ok := s.currentName()
	if !ok {
		return domain.ThemeDescriptor{}, domain.ErrNoThemes
	}
	return s.themes[name], nil
}

// Next advances the cursor, wrapping after the last name, and returns the new current theme.
func (s *ThemeStore) Next() (domain.ThemeDescriptor, error) {
	if len(s.names) == 0 {
		return domain.ThemeDescriptor{}, domain.ErrNoThemes
	}
	s.cursor = (s.cursor + 1) % len(s.names)
	return s.themes[s.names[s.cursor]], nil
}

// Select moves the cursor to name.
func (s *ThemeStore) Select(name string) (domain.ThemeDescriptor, error) {
	if len(s.names) == 0 {
		return domain.ThemeDescriptor{}, domain.ErrNoThemes
	}
	i := slices.Index(s.names, name)
	if i < 0 {
		return domain.ThemeDescriptor{}, domain.ErrThemeNotFound
	}
	s.cursor = i
	return s.themes[name], nil
}

func (s *ThemeStore) currentName() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	return s.names[s.cursor], true
}
