// Package actions executes the structured action batches produced by the
// remote assistant. Every action is validated against the site model before
// it touches the store; a batch keeps going past individual failures so one
// bad action cannot void the rest.
package actions

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
	"github.com/Kiwi570/bulle/internal/bulle/theme"
)

// Action kinds.
const (
	KindUpdateColor   = "updateColor"
	KindUpdateLayout  = "updateLayout"
	KindUpdateSpacing = "updateSpacing"
	KindUpdateContent = "updateContent"
	KindSetTheme      = "setTheme"
	KindAddItem       = "addItem"
	KindUpdateItem    = "updateItem"
	KindRemoveItem    = "removeItem"
)

// ErrUnknownAction is wrapped into the per-action error when the type tag is
// not one of the known kinds.
var ErrUnknownAction = errors.New("actions: unknown action type")

var hexRe = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Action is one structured mutation. Which fields are meaningful depends on
// Type; validation rejects actions whose required fields are absent or out
// of range.
type Action struct {
	Type    string         `json:"type"`
	Section string         `json:"section,omitempty"`
	Element string         `json:"element,omitempty"`
	Color   string         `json:"color,omitempty"`
	Layout  string         `json:"layout,omitempty"`
	Spacing string         `json:"spacing,omitempty"`
	Value   string         `json:"value,omitempty"`
	ThemeID string         `json:"themeId,omitempty"`
	Index   *int           `json:"index,omitempty"`
	Item    map[string]any `json:"item,omitempty"`
	Updates map[string]any `json:"updates,omitempty"`
}

// Store is the mutation surface the runner drives.
type Store interface {
	GetSection(id string) *site.Section
	UpdateContent(id, field, value string)
	UpdateLayoutVariant(id, variant string)
	UpdateSpacing(id string, spacing site.Spacing)
	UpdateSectionColor(id, element, hex string)
	SetTheme(id string)
	AddItem(id string, item site.Item) string
	UpdateItem(id string, index int, updates map[string]any)
	RemoveItem(id string, index int)
}

// Runner applies action batches to a store.
type Runner struct {
	store Store
	// highlight, when set, is called with the section id after each
	// successful section-scoped action so the UI can flash the target.
	highlight func(sectionID string)
}

// NewRunner returns a Runner over the given store. highlight may be nil.
func NewRunner(store Store, highlight func(sectionID string)) *Runner {
	return &Runner{store: store, highlight: highlight}
}

// ActionResult records the outcome of one action: the action as applied,
// plus the rejection error if it did not run.
type ActionResult struct {
	Action Action
	Err    error
}

// BatchResult reports the outcome of one batch.
type BatchResult struct {
	// Executed counts the actions that validated and ran.
	Executed int
	// Errors holds one error per rejected action, each naming its index.
	Errors []error
	// Results holds one entry per action, in batch order.
	Results []ActionResult
}

// Success reports whether every action in the batch ran.
func (r BatchResult) Success() bool { return len(r.Errors) == 0 }

// Run validates and applies each action in order. A rejected action is
// recorded and skipped; later actions still run.
func (r *Runner) Run(batch []Action) BatchResult {
	result := BatchResult{Results: make([]ActionResult, 0, len(batch))}
	for i, a := range batch {
		if err := r.apply(a); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("action %d (%s): %w", i, a.Type, err))
			result.Results = append(result.Results, ActionResult{Action: a, Err: err})
			continue
		}
		result.Executed++
		result.Results = append(result.Results, ActionResult{Action: a})
		if r.highlight != nil && a.Type != KindSetTheme {
			r.highlight(a.Section)
		}
	}
	return result
}

func (r *Runner) apply(a Action) error {
	if a.Type == KindSetTheme {
		if !theme.Valid(a.ThemeID) {
			return fmt.Errorf("unknown theme %q", a.ThemeID)
		}
		r.store.SetTheme(a.ThemeID)
		return nil
	}

	// Everything else is section-scoped.
	sec := r.store.GetSection(a.Section)
	if sec == nil {
		return fmt.Errorf("unknown section %q", a.Section)
	}
	cfg, ok := lexicon.SectionFor(sec.Type)
	if !ok {
		return fmt.Errorf("unconfigured section type %q", sec.Type)
	}

	switch a.Type {
	case KindUpdateColor:
		if !cfg.CanColor(a.Element) {
			return fmt.Errorf("element %q is not colorable", a.Element)
		}
		if !hexRe.MatchString(a.Color) {
			return fmt.Errorf("invalid color %q", a.Color)
		}
		r.store.UpdateSectionColor(a.Section, a.Element, a.Color)

	case KindUpdateLayout:
		// The store owns the variant set; only an empty variant is rejected.
		if a.Layout == "" {
			return fmt.Errorf("empty layout variant")
		}
		r.store.UpdateLayoutVariant(a.Section, a.Layout)

	case KindUpdateSpacing:
		spacing := site.Spacing(a.Spacing)
		if !site.ValidSpacing(spacing) {
			return fmt.Errorf("invalid spacing %q", a.Spacing)
		}
		r.store.UpdateSpacing(a.Section, spacing)

	case KindUpdateContent:
		// The store owns the field set; only an empty field name is rejected.
		if a.Element == "" {
			return fmt.Errorf("empty content field")
		}
		r.store.UpdateContent(a.Section, a.Element, a.Value)

	case KindAddItem:
		spec, ok := site.KindFor(sec.Type)
		if !ok {
			return fmt.Errorf("section %q has no item collection", a.Section)
		}
		r.store.AddItem(a.Section, spec.New(a.Item))

	case KindUpdateItem:
		index, err := resolveIndex(a.Index, len(sec.Items))
		if err != nil {
			return err
		}
		if a.Updates == nil {
			return fmt.Errorf("missing updates")
		}
		r.store.UpdateItem(a.Section, index, a.Updates)

	case KindRemoveItem:
		index, err := resolveIndex(a.Index, len(sec.Items))
		if err != nil {
			return err
		}
		r.store.RemoveItem(a.Section, index)

	default:
		return ErrUnknownAction
	}
	return nil
}

// resolveIndex requires an index to be present and maps -1 to the last item.
// Out-of-range values pass through; the store drops them as no-ops.
func resolveIndex(index *int, count int) (int, error) {
	if index == nil {
		return 0, fmt.Errorf("missing index")
	}
	i := *index
	if i == -1 {
		i = count - 1
	}
	return i, nil
}
