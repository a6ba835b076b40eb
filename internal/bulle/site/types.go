// Package site defines the landing-page document model: the site, its
// sections, and the per-type item collections. The model is plain data — all
// mutation goes through the store package so history and persistence stay in
// one place.
package site

import (
	"encoding/json"
	"fmt"
)

// SectionType is the closed set of page block types.
type SectionType string

const (
	TypeHero       SectionType = "hero"
	TypeFeatures   SectionType = "features"
	TypeHowItWorks SectionType = "howItWorks"
	TypePricing    SectionType = "pricing"
	TypeFaq        SectionType = "faq"
)

// Spacing controls the vertical padding of a section.
type Spacing string

const (
	SpacingCompact  Spacing = "compact"
	SpacingNormal   Spacing = "normal"
	SpacingSpacious Spacing = "spacious"
)

// ValidSpacing reports whether s is one of the three allowed spacing values.
func ValidSpacing(s Spacing) bool {
	switch s {
	case SpacingCompact, SpacingNormal, SpacingSpacious:
		return true
	}
	return false
}

// Layout holds a section's layout variant and spacing.
type Layout struct {
	Variant string  `json:"variant"`
	Spacing Spacing `json:"spacing"`
}

// Section is one page block. Content fields and the item collection vary by
// Type; Colors is sparse — absent entries fall back to theme defaults.
type Section struct {
	Type    SectionType
	Content map[string]string
	Layout  Layout
	Colors  map[string]string
	Items   []Item
}

// sectionJSON is the wire shape of a Section. The item collection is stored
// under the kind-specific key ("items", "steps" or "plans") to stay compatible
// with the exported document format.
type sectionJSON struct {
	Type    SectionType       `json:"type"`
	Content map[string]string `json:"content"`
	Layout  Layout            `json:"layout"`
	Colors  map[string]string `json:"colors,omitempty"`
	Items   []json.RawMessage `json:"items,omitempty"`
	Steps   []json.RawMessage `json:"steps,omitempty"`
	Plans   []json.RawMessage `json:"plans,omitempty"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	aux := sectionJSON{
		Type:    s.Type,
		Content: s.Content,
		Layout:  s.Layout,
		Colors:  s.Colors,
	}
	if len(s.Items) > 0 {
		raws := make([]json.RawMessage, len(s.Items))
		for i, it := range s.Items {
			b, err := json.Marshal(it)
			if err != nil {
				return nil, fmt.Errorf("site: marshal item %d: %w", i, err)
			}
			raws[i] = b
		}
		spec, ok := KindFor(s.Type)
		if !ok {
			return nil, fmt.Errorf("site: section type %q carries items but has no collection", s.Type)
		}
		switch spec.Collection {
		case "steps":
			aux.Steps = raws
		case "plans":
			aux.Plans = raws
		default:
			aux.Items = raws
		}
	}
	return json.Marshal(aux)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Type = aux.Type
	s.Content = aux.Content
	s.Layout = aux.Layout
	s.Colors = aux.Colors
	s.Items = nil

	raws := aux.Items
	if len(aux.Steps) > 0 {
		raws = aux.Steps
	}
	if len(aux.Plans) > 0 {
		raws = aux.Plans
	}
	if len(raws) == 0 {
		return nil
	}
	spec, ok := KindFor(aux.Type)
	if !ok {
		return fmt.Errorf("site: section type %q does not carry an item collection", aux.Type)
	}
	s.Items = make([]Item, 0, len(raws))
	for _, raw := range raws {
		it, err := decodeItem(spec.Kind, raw)
		if err != nil {
			return err
		}
		s.Items = append(s.Items, it)
	}
	return nil
}

// Site is the whole document: ordered, individually hideable sections plus the
// global theme.
type Site struct {
	Name               string              `json:"name"`
	Theme              string              `json:"theme"`
	SectionsOrder      []string            `json:"sectionsOrder"`
	SectionsVisibility map[string]bool     `json:"sectionsVisibility"`
	Sections           map[string]*Section `json:"sections"`
}

// Section returns the section with the given id, or nil when absent.
func (s *Site) Section(id string) *Section {
	if s == nil || s.Sections == nil {
		return nil
	}
	return s.Sections[id]
}

// VisibleOrder returns the section ids in display order, skipping hidden ones.
func (s *Site) VisibleOrder() []string {
	out := make([]string, 0, len(s.SectionsOrder))
	for _, id := range s.SectionsOrder {
		if s.SectionsVisibility[id] {
			out = append(out, id)
		}
	}
	return out
}
