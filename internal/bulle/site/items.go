package site

import (
	"encoding/json"
	"fmt"
)

// ItemKind identifies which concrete item type a section's collection holds.
type ItemKind string

const (
	KindFeature ItemKind = "feature"
	KindStep    ItemKind = "step"
	KindPlan    ItemKind = "plan"
	KindFaq     ItemKind = "faq"
)

// Item is one repeatable sub-entity inside a section's collection.
// Concrete types are FeatureItem, StepItem, PlanItem and FaqItem; the owning
// section's type determines which one applies.
type Item interface {
	// ItemID returns the item's unique id within its collection.
	ItemID() string
	// Kind returns the concrete kind tag.
	Kind() ItemKind
	// Label returns the human-facing display label (title, name or question,
	// whichever the kind defines). Used by delete confirmations.
	Label() string

	setID(id string)
	apply(updates map[string]any)
}

// SetItemID assigns the item's id. Ids are owned by the store, which calls
// this when an item enters a collection.
func SetItemID(i Item, id string) { i.setID(id) }

// ApplyItem merges a partial field update into the item. Unknown keys are
// ignored; the id never changes.
func ApplyItem(i Item, updates map[string]any) { i.apply(updates) }

// FeatureItem is one entry of a features section.
type FeatureItem struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (f *FeatureItem) ItemID() string { return f.ID }
func (f *FeatureItem) Kind() ItemKind { return KindFeature }
func (f *FeatureItem) Label() string  { return f.Title }
func (f *FeatureItem) setID(id string) { f.ID = id }

func (f *FeatureItem) apply(updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "icon":
			f.Icon = toString(v)
		case "color":
			f.Color = toString(v)
		case "title":
			f.Title = toString(v)
		case "description":
			f.Description = toString(v)
		}
	}
}

// StepItem is one entry of a howItWorks section.
type StepItem struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *StepItem) ItemID() string { return s.ID }
func (s *StepItem) Kind() ItemKind { return KindStep }
func (s *StepItem) Label() string  { return s.Title }
func (s *StepItem) setID(id string) { s.ID = id }

func (s *StepItem) apply(updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "number":
			s.Number = toInt(v)
		case "title":
			s.Title = toString(v)
		case "description":
			s.Description = toString(v)
		}
	}
}

// PlanItem is one entry of a pricing section.
type PlanItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	CTA         string   `json:"cta"`
	Highlighted bool     `json:"highlighted"`
	Badge       string   `json:"badge"`
}

func (p *PlanItem) ItemID() string { return p.ID }
func (p *PlanItem) Kind() ItemKind { return KindPlan }
func (p *PlanItem) Label() string  { return p.Name }
func (p *PlanItem) setID(id string) { p.ID = id }

func (p *PlanItem) apply(updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "name":
			p.Name = toString(v)
		case "price":
			p.Price = toString(v)
		case "period":
			p.Period = toString(v)
		case "description":
			p.Description = toString(v)
		case "cta":
			p.CTA = toString(v)
		case "badge":
			p.Badge = toString(v)
		case "highlighted":
			if b, ok := v.(bool); ok {
				p.Highlighted = b
			}
		case "features":
			p.Features = toStringSlice(v)
		}
	}
}

// FaqItem is one entry of a faq section.
type FaqItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (q *FaqItem) ItemID() string { return q.ID }
func (q *FaqItem) Kind() ItemKind { return KindFaq }
func (q *FaqItem) Label() string  { return q.Question }
func (q *FaqItem) setID(id string) { q.ID = id }

func (q *FaqItem) apply(updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "question":
			q.Question = toString(v)
		case "answer":
			q.Answer = toString(v)
		}
	}
}

// KindSpec is the per-kind table driving collection-key lookup, wizard field
// order and default-field synthesis for one item kind.
type KindSpec struct {
	Kind ItemKind

	// Collection is the JSON key the owning section stores its items under
	// ("items", "steps" or "plans").
	Collection string

	// Fields is the ordered list of fields the add-item wizard walks through.
	Fields []string

	// New builds an item from wizard-collected field values, filling defaults
	// for anything absent. The id is assigned later, by the store.
	New func(data map[string]any) Item

	// Default synthesizes the nth default-valued item for bulk adds
	// ("feature 3", "étape 2", ...).
	Default func(singular string, n int) Item
}

var kindSpecs = map[SectionType]KindSpec{
	TypeFeatures: {
		Kind:       KindFeature,
		Collection: "items",
		Fields:     []string{"title", "description", "icon", "color"},
		New: func(data map[string]any) Item {
			return &FeatureItem{
				Icon:        stringOr(data, "icon", "Star"),
				Color:       stringOr(data, "color", "#A78BFA"),
				Title:       stringOr(data, "title", ""),
				Description: stringOr(data, "description", ""),
			}
		},
		Default: func(singular string, n int) Item {
			return &FeatureItem{
				Icon:        "Star",
				Color:       "#A78BFA",
				Title:       fmt.Sprintf("%s %d", singular, n),
				Description: "Description",
			}
		},
	},
	TypeHowItWorks: {
		Kind:       KindStep,
		Collection: "steps",
		Fields:     []string{"title", "description"},
		New: func(data map[string]any) Item {
			return &StepItem{
				Number:      toInt(data["number"]),
				Title:       stringOr(data, "title", ""),
				Description: stringOr(data, "description", ""),
			}
		},
		Default: func(singular string, n int) Item {
			return &StepItem{Number: n, Title: fmt.Sprintf("%s %d", singular, n), Description: "Description"}
		},
	},
	TypePricing: {
		Kind:       KindPlan,
		Collection: "plans",
		Fields:     []string{"name", "price", "description"},
		New: func(data map[string]any) Item {
			return &PlanItem{
				Name:        stringOr(data, "name", ""),
				Price:       stringOr(data, "price", ""),
				Period:      stringOr(data, "period", ""),
				Description: stringOr(data, "description", ""),
				Features:    toStringSlice(data["features"]),
				CTA:         stringOr(data, "cta", "Choisir"),
				Highlighted: false,
				Badge:       stringOr(data, "badge", ""),
			}
		},
		Default: func(singular string, n int) Item {
			return &PlanItem{Name: fmt.Sprintf("%s %d", singular, n), Price: "9€", Period: "/mois", Description: "Description", CTA: "Choisir"}
		},
	},
	TypeFaq: {
		Kind:       KindFaq,
		Collection: "items",
		Fields:     []string{"question", "answer"},
		New: func(data map[string]any) Item {
			return &FaqItem{
				Question: stringOr(data, "question", ""),
				Answer:   stringOr(data, "answer", ""),
			}
		},
		Default: func(singular string, n int) Item {
			return &FaqItem{Question: fmt.Sprintf("%s %d ?", singular, n), Answer: "Réponse"}
		},
	},
}

// KindFor returns the KindSpec for a section type, or ok=false for types
// without an item collection (hero).
func KindFor(t SectionType) (KindSpec, bool) {
	spec, ok := kindSpecs[t]
	return spec, ok
}

// decodeItem unmarshals one raw item of the given kind.
func decodeItem(kind ItemKind, raw json.RawMessage) (Item, error) {
	var it Item
	switch kind {
	case KindFeature:
		it = &FeatureItem{}
	case KindStep:
		it = &StepItem{}
	case KindPlan:
		it = &PlanItem{}
	case KindFaq:
		it = &FaqItem{}
	default:
		return nil, fmt.Errorf("site: unknown item kind %q", kind)
	}
	if err := json.Unmarshal(raw, it); err != nil {
		return nil, fmt.Errorf("site: decode %s item: %w", kind, err)
	}
	return it, nil
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func stringOr(data map[string]any, key, def string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return def
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func toStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
