package lexicon

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// LayoutVariant is one selectable layout for a section type, with the
// keywords that trigger it in free text.
type LayoutVariant struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// SectionConfig describes what the assistant can do with one section type.
type SectionConfig struct {
	Type           site.SectionType  `yaml:"-"`
	Label          string            `yaml:"label"`
	Emoji          string            `yaml:"emoji"`
	ColorElements  []string          `yaml:"colorElements"`
	ColorLabels    map[string]string `yaml:"colorLabels"`
	TextElements   []string          `yaml:"textElements"`
	TextLabels     map[string]string `yaml:"textLabels"`
	TextPrompts    map[string]string `yaml:"textPrompts"`
	HasButton      bool              `yaml:"hasButton"`
	Layouts        []LayoutVariant   `yaml:"layouts"`
	ItemName       string            `yaml:"itemName"`
	ItemNamePlural string            `yaml:"itemNamePlural"`
	ItemPrompts    map[string]string `yaml:"itemPrompts"`
	NextSection    string            `yaml:"nextSection"`
}

// HasItems reports whether this section type owns an item collection.
func (c *SectionConfig) HasItems() bool {
	_, ok := site.KindFor(c.Type)
	return ok && c.ItemName != ""
}

// ColorLabel returns the display label for a colorable element, falling back
// to the element key itself.
func (c *SectionConfig) ColorLabel(element string) string {
	if l, ok := c.ColorLabels[element]; ok {
		return l
	}
	return element
}

// TextLabel returns the display label for a text element, falling back to the
// element key itself.
func (c *SectionConfig) TextLabel(element string) string {
	if l, ok := c.TextLabels[element]; ok {
		return l
	}
	return element
}

// CanColor reports whether element is a valid color target for this type.
func (c *SectionConfig) CanColor(element string) bool {
	for _, e := range c.ColorElements {
		if e == element {
			return true
		}
	}
	return false
}

// CanEditText reports whether element is a valid text target for this type.
func (c *SectionConfig) CanEditText(element string) bool {
	for _, e := range c.TextElements {
		if e == element {
			return true
		}
	}
	return false
}

// LayoutLabel returns the display label for a variant id, falling back to the
// id itself for variants outside the configured set.
func (c *SectionConfig) LayoutLabel(variant string) string {
	for _, l := range c.Layouts {
		if l.ID == variant {
			return l.Label
		}
	}
	return variant
}

// LayoutLabels returns all variant labels in configuration order.
func (c *SectionConfig) LayoutLabels() []string {
	out := make([]string, len(c.Layouts))
	for i, l := range c.Layouts {
		out[i] = l.Label
	}
	return out
}

type sectionsFile struct {
	Sections map[site.SectionType]*SectionConfig `yaml:"sections"`
}

// ParseSections decodes and validates a sections YAML document.
func ParseSections(data []byte) (map[site.SectionType]*SectionConfig, error) {
	var file sectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("lexicon: sections parse: %w", err)
	}
	for t, cfg := range file.Sections {
		cfg.Type = t
		if cfg.Label == "" {
			return nil, fmt.Errorf("lexicon: section %q: label is required", t)
		}
		if len(cfg.Layouts) == 0 {
			return nil, fmt.Errorf("lexicon: section %q: at least one layout is required", t)
		}
		seen := make(map[string]struct{}, len(cfg.Layouts))
		for _, l := range cfg.Layouts {
			if l.ID == "" || len(l.Keywords) == 0 {
				return nil, fmt.Errorf("lexicon: section %q: layout %q needs an id and keywords", t, l.ID)
			}
			if _, dup := seen[l.ID]; dup {
				return nil, fmt.Errorf("lexicon: section %q: duplicate layout id %q", t, l.ID)
			}
			seen[l.ID] = struct{}{}
		}
		if spec, ok := site.KindFor(t); ok && cfg.ItemName != "" {
			for _, f := range spec.Fields {
				if cfg.ItemPrompts[f] == "" {
					return nil, fmt.Errorf("lexicon: section %q: missing item prompt for field %q", t, f)
				}
			}
		}
	}
	return file.Sections, nil
}

var (
	sectionsOnce sync.Once
	sectionCfgs  map[site.SectionType]*SectionConfig
)

// SectionFor returns the built-in configuration for a section type.
func SectionFor(t site.SectionType) (*SectionConfig, bool) {
	sectionsOnce.Do(func() {
		data, err := dataFS.ReadFile("data/sections.yaml")
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded sections table missing: %v", err))
		}
		cfgs, err := ParseSections(data)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded sections table invalid: %v", err))
		}
		sectionCfgs = cfgs
	})
	cfg, ok := sectionCfgs[t]
	return cfg, ok
}

// SectionLabels returns the display labels of all section types, in the
// canonical page order. Used by the "pick a section first" prompt.
func SectionLabels() []string {
	order := []site.SectionType{site.TypeHero, site.TypeFeatures, site.TypeHowItWorks, site.TypePricing, site.TypeFaq}
	out := make([]string, 0, len(order))
	for _, t := range order {
		if cfg, ok := SectionFor(t); ok {
			out = append(out, cfg.Label)
		}
	}
	return out
}
