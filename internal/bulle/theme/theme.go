// Package theme holds the built-in site themes. A theme is a named color
// scheme the exporter turns into CSS custom properties; the site stores only
// the theme id.
package theme

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/themes.yaml
var dataFS embed.FS

// DefaultID is the theme applied to new sites.
const DefaultID = "aurora"

// Colors is the palette a theme exposes to the exporter.
type Colors struct {
	Background          string `yaml:"background"`
	BackgroundSecondary string `yaml:"backgroundSecondary"`
	Surface             string `yaml:"surface"`
	SurfaceHover        string `yaml:"surfaceHover"`
	Border              string `yaml:"border"`
	TextPrimary         string `yaml:"textPrimary"`
	TextSecondary       string `yaml:"textSecondary"`
	TextMuted           string `yaml:"textMuted"`
	AccentPrimary       string `yaml:"accentPrimary"`
	AccentSecondary     string `yaml:"accentSecondary"`
	AccentTertiary      string `yaml:"accentTertiary"`
}

// Theme is one complete color scheme.
type Theme struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Emoji       string `yaml:"emoji"`
	Description string `yaml:"description"`
	Dark        bool   `yaml:"dark"`
	Colors      Colors `yaml:"colors"`
	Gradient    string `yaml:"gradient"`
}

type themesFile struct {
	Themes []Theme `yaml:"themes"`
}

// Parse decodes and validates a themes document.
func Parse(data []byte) ([]Theme, error) {
	var f themesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("theme: parse: %w", err)
	}
	if len(f.Themes) == 0 {
		return nil, fmt.Errorf("theme: no themes defined")
	}
	seen := make(map[string]struct{}, len(f.Themes))
	for _, t := range f.Themes {
		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("theme: theme missing id or name")
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("theme: duplicate theme id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Colors.Background == "" || t.Colors.AccentPrimary == "" {
			return nil, fmt.Errorf("theme %q: incomplete palette", t.ID)
		}
	}
	return f.Themes, nil
}

var (
	loadOnce sync.Once
	loaded   []Theme
	byID     map[string]*Theme
)

func load() {
	data, err := dataFS.ReadFile("data/themes.yaml")
	if err != nil {
		panic(fmt.Sprintf("theme: read embedded themes: %v", err))
	}
	themes, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("theme: %v", err))
	}
	loaded = themes
	byID = make(map[string]*Theme, len(themes))
	for i := range loaded {
		byID[loaded[i].ID] = &loaded[i]
	}
	if _, ok := byID[DefaultID]; !ok {
		panic(fmt.Sprintf("theme: default theme %q not defined", DefaultID))
	}
}

// ByID returns the theme with the given id, falling back to the default
// theme for unknown ids.
func ByID(id string) *Theme {
	loadOnce.Do(load)
	if t, ok := byID[id]; ok {
		return t
	}
	return byID[DefaultID]
}

// Valid reports whether id names a built-in theme.
func Valid(id string) bool {
	loadOnce.Do(load)
	_, ok := byID[id]
	return ok
}

// IDs returns the theme ids in display order.
func IDs() []string {
	loadOnce.Do(load)
	ids := make([]string, len(loaded))
	for i, t := range loaded {
		ids[i] = t.ID
	}
	return ids
}

// All returns the themes in display order.
func All() []Theme {
	loadOnce.Do(load)
	out := make([]Theme, len(loaded))
	copy(out, loaded)
	return out
}
