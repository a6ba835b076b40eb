package interpreter

import (
	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// Mode identifies which interaction the conversation is currently inside.
// Exactly one mode is active per turn; the payload fields that accompany each
// mode live in Context. Replacing the original bag of independent booleans
// with a single tag makes the "at most one pending flow" invariant structural.
type Mode int

const (
	// ModeIdle means no multi-turn flow is pending.
	ModeIdle Mode = iota
	// ModeTextEdit means the next message verbatim becomes the value of
	// Context.TextElement.
	ModeTextEdit
	// ModeItemWizard means Context.Wizard drives the turn.
	ModeItemWizard
	// ModeLayoutPreview means an uncommitted layout change awaits a yes/no;
	// Context.LayoutRollback holds the pre-preview variant.
	ModeLayoutPreview
	// ModeColorPreview means an uncommitted color change awaits a yes/no;
	// Context.ColorElement and Context.ColorRollback hold the target and its
	// pre-preview value.
	ModeColorPreview
	// ModeColorSelect means the user asked for colors and must now name an
	// element; Context.PendingColor may already hold a detected color.
	ModeColorSelect
	// ModeColorTarget means an element is chosen and awaits its color
	// (Context.PendingElement).
	ModeColorTarget
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTextEdit:
		return "text-edit"
	case ModeItemWizard:
		return "item-wizard"
	case ModeLayoutPreview:
		return "layout-preview"
	case ModeColorPreview:
		return "color-preview"
	case ModeColorSelect:
		return "color-select"
	case ModeColorTarget:
		return "color-target"
	}
	return "unknown"
}

// WizardAction is the item wizard's operation.
type WizardAction string

const (
	WizardAdd    WizardAction = "add"
	WizardDelete WizardAction = "delete"
)

// WizardStage is the delete wizard's sub-step.
type WizardStage string

const (
	StageChooseItem WizardStage = "choose-item"
	StageConfirm    WizardStage = "confirm"
)

// Wizard is the item add/delete sub-flow state.
type Wizard struct {
	Action WizardAction

	// Add flow: ordered fields being filled and the index of the next one.
	Fields     []string
	FieldIndex int
	Data       map[string]any

	// Delete flow: current stage and, once chosen, the item index.
	Stage WizardStage
	Index int
}

// Context is the conversational state threaded across turns for one active
// section. The caller persists the Context returned in each Result and passes
// it back on the next turn; it holds no references into the store.
//
// All pending state is section-scoped: switching sections must start from
// NewContext so nothing leaks across sections.
type Context struct {
	// ActiveSection is the section commands apply to; "" accepts no commands.
	ActiveSection string

	Mode Mode

	// TextElement is the content field awaiting free-text replacement
	// (ModeTextEdit).
	TextElement string

	// Wizard is the item add/delete sub-flow state (ModeItemWizard).
	Wizard *Wizard

	// LayoutRollback is the variant restored when a layout preview is
	// declined (ModeLayoutPreview).
	LayoutRollback string

	// ColorElement and ColorRollback identify an uncommitted color preview
	// (ModeColorPreview). ColorRollback is "" when the element had no
	// explicit color before the preview.
	ColorElement  string
	ColorRollback string

	// PendingColor is a color detected before its target element is known
	// (ModeColorSelect).
	PendingColor *lexicon.Color

	// PendingElement is an element chosen before its color is known
	// (ModeColorTarget).
	PendingElement string

	// LastSubject is the last element touched, used to resolve elliptical
	// follow-ups ("make it pink" with no named element).
	LastSubject string

	ModificationCount int
	SatisfactionCount int
}

// NewContext returns the empty context for a newly activated section.
func NewContext(sectionID string) Context {
	return Context{ActiveSection: sectionID}
}

// ResultAction is a side effect the caller must perform.
type ResultAction string

const (
	ActionNone     ResultAction = ""
	ActionExport   ResultAction = "export"
	ActionNavigate ResultAction = "navigate"
)

// Result is the outcome of one processed turn. Success false means the
// message was not understood (or a wizard target was invalid) — it is a
// conversational signal, not an error: Message and Suggestions are always
// usable and Context is always the state to carry forward.
type Result struct {
	Success     bool
	Message     string
	Hint        string
	Suggestions []string
	Context     Context

	// Toast, when non-empty, is a transient confirmation for the caller's UI.
	Toast string

	// Action and NavigateTo ask the caller to open the export flow or switch
	// the active section.
	Action     ResultAction
	NavigateTo string

	// OpenPalette asks the caller to open the full color picker for
	// Context.PendingElement.
	OpenPalette bool

	// SilentPreview marks a re-preview that applied a store change but emits
	// no chat message (the user is cycling options before committing).
	SilentPreview bool
}

// Store is the section-mutation surface the processor drives. The store is
// trusted: mutations against unknown ids are silent no-ops.
type Store interface {
	GetSection(id string) *site.Section
	UpdateContent(id, field, value string)
	UpdateLayoutVariant(id, variant string)
	UpdateSectionColor(id, element, hex string)
	AddItem(id string, item site.Item) string
	RemoveItem(id string, index int)
	Undo() bool
	CanUndo() bool
}
