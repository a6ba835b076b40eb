// Package interpreter implements the local assistant: a deterministic,
// rule-based turn processor that maps free-text chat messages to mutations of
// the active section. No network call and no model — keyword tables and an
// explicit per-turn state machine, so behavior is fully reproducible.
package interpreter

import (
	"fmt"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/detect"
	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// DefaultMaxItemsPerAdd caps how many items a single "add N" command may
// synthesize.
const DefaultMaxItemsPerAdd = 5

// Config tunes a Processor. The zero value selects the built-in lexicon and
// the default bulk-add cap.
type Config struct {
	Lexicon        *lexicon.Lexicon
	MaxItemsPerAdd int
}

// Processor turns chat messages into store mutations. It holds no per-turn
// state; the Context passed in and returned carries all of it.
type Processor struct {
	lex      *lexicon.Lexicon
	store    Store
	maxItems int
}

// New returns a Processor bound to the given store.
func New(store Store, cfg Config) *Processor {
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	maxItems := cfg.MaxItemsPerAdd
	if maxItems <= 0 {
		maxItems = DefaultMaxItemsPerAdd
	}
	return &Processor{lex: lex, store: store, maxItems: maxItems}
}

// ProcessTurn runs one conversational turn. It executes at most one state
// transition, applies the associated store mutations, and returns the reply,
// the next context, and any UI side-effect flags. It never returns an error:
// un-understood input is a Success=false Result with a clarifying message.
func (p *Processor) ProcessTurn(message string, ctx Context) Result {
	msg := strings.ToLower(strings.TrimSpace(message))
	original := strings.TrimSpace(message)

	if ctx.ActiveSection == "" {
		return Result{
			Success:     false,
			Message:     "👋 Sélectionne une section pour commencer !",
			Suggestions: lexicon.SectionLabels(),
			Context:     ctx,
		}
	}

	section := p.store.GetSection(ctx.ActiveSection)
	if section == nil {
		return Result{Success: false, Message: "🤔 Section introuvable...", Context: ctx}
	}

	cfg, ok := lexicon.SectionFor(section.Type)
	if !ok {
		return Result{Success: false, Message: "🤔 Section introuvable...", Context: ctx}
	}

	// Multi-turn flows first, in strict priority order. A flow handler that
	// does not recognize the message lets the turn fall through to the
	// direct-command dispatch below.
	switch ctx.Mode {
	case ModeTextEdit:
		return p.handleTextEdit(msg, original, ctx, cfg, section)
	case ModeItemWizard:
		return p.handleWizard(msg, original, ctx, cfg, section)
	case ModeLayoutPreview:
		if r, handled := p.handleLayoutPreview(msg, ctx, cfg, section); handled {
			return r
		}
	case ModeColorPreview:
		if r, handled := p.handleColorPreview(msg, ctx, cfg, section); handled {
			return r
		}
	case ModeColorSelect:
		if r, handled := p.handleColorSelect(msg, ctx, cfg, section); handled {
			return r
		}
	case ModeColorTarget:
		if r, handled := p.handleColorTarget(msg, ctx, cfg, section); handled {
			return r
		}
	}

	return p.dispatch(msg, ctx, cfg, section)
}

// handleTextEdit consumes the whole message as the new value of the pending
// text element. The cancel keyword reverts without writing.
func (p *Processor) handleTextEdit(msg, original string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	element := ctx.TextElement
	next := ctx
	next.Mode = ModeIdle
	next.TextElement = ""

	if strings.Contains(msg, "annuler") || msg == "annule" {
		return Result{
			Success:     true,
			Message:     "↩️ Annulé !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}
	}

	p.store.UpdateContent(ctx.ActiveSection, element, original)
	label := cfg.TextLabel(element)
	next.LastSubject = element
	next.ModificationCount++

	preview := original
	if runes := []rune(preview); len(runes) > 50 {
		preview = string(runes[:50]) + "..."
	}
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("✨ %s mis à jour !\n\n\"%s\"", label, preview),
		Suggestions: p.suggestions(cfg, section, next.ModificationCount),
		Toast:       fmt.Sprintf("✏️ %s modifié !", label),
		Context:     next,
	}
}

// handleLayoutPreview commits, rolls back, or silently re-previews a pending
// layout change.
func (p *Processor) handleLayoutPreview(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) (Result, bool) {
	if p.lex.Matches(msg, lexicon.CategoryYes) {
		next := ctx
		next.Mode = ModeIdle
		next.LayoutRollback = ""
		next.ModificationCount++
		return Result{
			Success:     true,
			Message:     "✨ Layout validé !",
			Suggestions: p.suggestions(cfg, section, next.ModificationCount),
			Toast:       "📐 Layout appliqué !",
			Context:     next,
		}, true
	}
	if p.lex.Matches(msg, lexicon.CategoryNo) {
		if ctx.LayoutRollback != "" {
			p.store.UpdateLayoutVariant(ctx.ActiveSection, ctx.LayoutRollback)
		}
		next := ctx
		next.Mode = ModeIdle
		next.LayoutRollback = ""
		return Result{
			Success:     true,
			Message:     "↩️ Layout annulé !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}, true
	}
	if layout := detect.Layout(cfg, msg); layout != nil {
		// Cycling options before committing: apply but stay quiet.
		p.store.UpdateLayoutVariant(ctx.ActiveSection, layout.ID)
		return Result{Success: true, SilentPreview: true, Context: ctx}, true
	}
	return Result{}, false
}

// handleColorPreview is the color twin of handleLayoutPreview.
func (p *Processor) handleColorPreview(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) (Result, bool) {
	if p.lex.Matches(msg, lexicon.CategoryYes) {
		next := ctx
		next.Mode = ModeIdle
		next.LastSubject = ctx.ColorElement
		next.ColorElement = ""
		next.ColorRollback = ""
		next.ModificationCount++
		return Result{
			Success:     true,
			Message:     "✨ Couleur validée !",
			Suggestions: p.suggestions(cfg, section, next.ModificationCount),
			Toast:       "🎨 Couleur appliquée !",
			Context:     next,
		}, true
	}
	if p.lex.Matches(msg, lexicon.CategoryNo) {
		if ctx.ColorRollback != "" && ctx.ColorElement != "" {
			p.store.UpdateSectionColor(ctx.ActiveSection, ctx.ColorElement, ctx.ColorRollback)
		}
		next := ctx
		next.Mode = ModeIdle
		next.ColorElement = ""
		next.ColorRollback = ""
		return Result{
			Success:     true,
			Message:     "↩️ Couleur annulée !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}, true
	}
	if color := detect.Color(p.lex, msg); color != nil && ctx.ColorElement != "" {
		p.store.UpdateSectionColor(ctx.ActiveSection, ctx.ColorElement, color.Hex)
		return Result{Success: true, SilentPreview: true, Context: ctx}, true
	}
	return Result{}, false
}

// handleColorSelect resolves which element a requested color change targets.
func (p *Processor) handleColorSelect(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) (Result, bool) {
	if element := detect.Element(p.lex, msg); element != "" && cfg.CanColor(element) {
		next := ctx
		next.Mode = ModeColorTarget
		next.PendingElement = element
		next.PendingColor = nil
		next.LastSubject = element
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("🎨 Quelle couleur pour le %s ?", cfg.ColorLabel(element)),
			Suggestions: []string{"Rose", "Violet", "Bleu", "🎨 Palette"},
			Context:     next,
		}, true
	}

	if color := detect.Color(p.lex, msg); color != nil {
		// A color without an element: remember it and ask for the target.
		next := ctx
		next.PendingColor = color
		suggestions := make([]string, 0, len(cfg.ColorElements))
		for _, e := range cfg.ColorElements {
			suggestions = append(suggestions, cfg.ColorLabel(e))
		}
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("🎨 %s, super choix !\n\nSur quel élément ?", color.Name),
			Suggestions: suggestions,
			Context:     next,
		}, true
	}

	if p.lex.Matches(msg, lexicon.CategoryNo) {
		next := ctx
		next.Mode = ModeIdle
		next.PendingColor = nil
		return Result{
			Success:     true,
			Message:     "👍 OK !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}, true
	}
	return Result{}, false
}

// handleColorTarget waits for the color of an already chosen element.
func (p *Processor) handleColorTarget(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) (Result, bool) {
	if color := detect.Color(p.lex, msg); color != nil {
		return p.applyColorPreview(ctx, cfg, section, ctx.PendingElement, color), true
	}
	if strings.Contains(msg, "palette") || strings.Contains(msg, "plus") {
		return Result{
			Success:     true,
			Message:     "🎨 Palette ouverte !",
			OpenPalette: true,
			Context:     ctx,
		}, true
	}
	if p.lex.Matches(msg, lexicon.CategoryNo) {
		next := ctx
		next.Mode = ModeIdle
		next.PendingElement = ""
		return Result{
			Success:     true,
			Message:     "👍 OK !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}, true
	}
	return Result{}, false
}

// applyColorPreview applies a color to an element and enters preview mode.
// The change always awaits an explicit confirmation before it counts as a
// modification.
func (p *Processor) applyColorPreview(ctx Context, cfg *lexicon.SectionConfig, section *site.Section, element string, color *lexicon.Color) Result {
	rollback := section.Colors[element]
	p.store.UpdateSectionColor(ctx.ActiveSection, element, color.Hex)

	next := ctx
	next.Mode = ModeColorPreview
	next.ColorElement = element
	next.ColorRollback = rollback
	next.PendingElement = ""
	next.PendingColor = nil
	next.LastSubject = element
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("🎨 %s en %s !\n\n👀 Aperçu appliqué. Tu valides ?", cfg.ColorLabel(element), color.Name),
		Suggestions: []string{"✓ Valider", "✕ Annuler", "Rose", "Violet", "Bleu"},
		Context:     next,
	}
}

// dispatch handles direct commands once no pending flow consumed the turn.
func (p *Processor) dispatch(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	hasChangeVerb := p.lex.Matches(msg, lexicon.CategoryChange)
	element := detect.Element(p.lex, msg)
	color := detect.Color(p.lex, msg)
	layout := detect.Layout(cfg, msg)

	// "Met le titre en rose" — verb, element and color in one turn.
	if hasChangeVerb && element != "" && color != nil && cfg.CanColor(element) {
		return p.applyColorPreview(ctx, cfg, section, element, color)
	}

	// "Passe en 3 colonnes" — a layout keyword alone.
	if layout != nil {
		rollback := section.Layout.Variant
		p.store.UpdateLayoutVariant(ctx.ActiveSection, layout.ID)
		next := ctx
		next.Mode = ModeLayoutPreview
		next.LayoutRollback = rollback
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("📐 Layout \"%s\" !\n\n👀 Aperçu appliqué. Tu valides ?", layout.Label),
			Suggestions: append(cfg.LayoutLabels(), "✓ Valider", "✕ Annuler"),
			Context:     next,
		}
	}

	// "En bleu" — a color with no element: reuse the last subject, else ask.
	if color != nil && element == "" {
		if ctx.LastSubject != "" && cfg.CanColor(ctx.LastSubject) {
			return p.applyColorPreview(ctx, cfg, section, ctx.LastSubject, color)
		}
		next := ctx
		next.Mode = ModeColorSelect
		next.PendingColor = color
		suggestions := make([]string, 0, len(cfg.ColorElements))
		for _, e := range cfg.ColorElements {
			suggestions = append(suggestions, cfg.ColorLabel(e))
		}
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("🎨 %s, super choix !\n\nSur quel élément ?", color.Name),
			Suggestions: suggestions,
			Context:     next,
		}
	}

	// Category keyword: layout.
	if p.lex.Matches(msg, lexicon.CategoryLayout) {
		next := ctx
		next.Mode = ModeLayoutPreview
		next.LayoutRollback = section.Layout.Variant
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("📐 Layout actuel : %s\n\nClique pour tester, puis valide !", cfg.LayoutLabel(section.Layout.Variant)),
			Suggestions: append(cfg.LayoutLabels(), "✓ Valider", "✕ Annuler"),
			Context:     next,
		}
	}

	// Category keyword: colors.
	if p.lex.Matches(msg, lexicon.CategoryColors) {
		next := ctx
		next.Mode = ModeColorSelect
		suggestions := make([]string, 0, len(cfg.ColorElements))
		for _, e := range cfg.ColorElements {
			suggestions = append(suggestions, cfg.ColorLabel(e))
		}
		if len(suggestions) > 4 {
			suggestions = suggestions[:4]
		}
		return Result{
			Success:     true,
			Message:     "🎨 Quel élément colorer ?",
			Suggestions: suggestions,
			Context:     next,
		}
	}

	// Category keyword: text. Clears any stale color-selection state.
	if p.lex.Matches(msg, lexicon.CategoryText) {
		next := ctx
		next.Mode = ModeIdle
		next.PendingColor = nil
		suggestions := make([]string, 0, len(cfg.TextElements))
		for _, e := range cfg.TextElements {
			suggestions = append(suggestions, cfg.TextLabel(e))
		}
		if len(suggestions) > 4 {
			suggestions = suggestions[:4]
		}
		return Result{
			Success:     true,
			Message:     "✏️ Quel texte modifier ?",
			Suggestions: suggestions,
			Context:     next,
		}
	}

	// A named text element with no competing color token: prompt for the new
	// value and show the current one.
	if element != "" && cfg.CanEditText(element) && ctx.Mode != ModeColorSelect && color == nil {
		next := ctx
		next.Mode = ModeTextEdit
		next.TextElement = element
		next.LastSubject = element
		return Result{
			Success: true,
			Message: cfg.TextPrompts[element],
			Hint:    fmt.Sprintf("💬 Actuel : \"%s\"", section.Content[element]),
			Context: next,
		}
	}

	// Add item(s).
	if p.lex.Matches(msg, lexicon.CategoryAdd) && cfg.HasItems() {
		return p.handleAddCommand(msg, ctx, cfg, section)
	}

	// Remove item.
	if p.lex.Matches(msg, lexicon.CategoryDelete) && cfg.HasItems() {
		return p.handleDeleteCommand(msg, ctx, cfg, section)
	}

	return p.dispatchFixed(msg, ctx, cfg, section)
}

// dispatchFixed handles the fixed commands: export, navigation, undo, help,
// affirmations and greetings, then the fallback.
func (p *Processor) dispatchFixed(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	if strings.Contains(msg, "export") || strings.Contains(msg, "télécharger") || strings.Contains(msg, "publier") {
		return Result{Success: true, Message: "📤 C'est parti pour l'export !", Action: ActionExport, Context: ctx}
	}

	if strings.Contains(msg, "suivante") || strings.Contains(msg, "next") || strings.Contains(msg, "passer") {
		if cfg.NextSection != "" {
			nextCfg, ok := lexicon.SectionFor(site.SectionType(cfg.NextSection))
			if ok {
				nextSection := p.store.GetSection(cfg.NextSection)
				return Result{
					Success:     true,
					Message:     fmt.Sprintf("➡️ %s %s !", nextCfg.Emoji, nextCfg.Label),
					Suggestions: p.suggestions(nextCfg, nextSection, 0),
					Action:      ActionNavigate,
					NavigateTo:  cfg.NextSection,
					Context:     ctx,
				}
			}
		}
		return Result{
			Success:     true,
			Message:     "🎉 Tu as tout fait ! Exporter ?",
			Suggestions: []string{"Exporter", "Hero", "✨ Parfait"},
			Context:     ctx,
		}
	}

	if strings.Contains(msg, "annule") || strings.Contains(msg, "undo") || strings.Contains(msg, "retour") {
		if p.store.CanUndo() {
			p.store.Undo()
			return Result{
				Success:     true,
				Message:     "↩️ Annulé !",
				Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
				Toast:       "↩️ Annulé",
				Context:     ctx,
			}
		}
		return Result{
			Success:     false,
			Message:     "🤷 Rien à annuler !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     ctx,
		}
	}

	if strings.Contains(msg, "aide") || msg == "?" || strings.Contains(msg, "help") {
		return Result{
			Success:     true,
			Message:     "💡 Je comprends plein de choses !\n\n• \"Met le titre en rose\"\n• \"Le layout\"\n• \"Les couleurs\"\n• \"Ajoute 3 features\"\n• \"Supprime la dernière\"",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     ctx,
		}
	}

	if p.lex.Matches(msg, lexicon.CategoryYes) {
		acks := []string{"🎉 Super !", "✨ Parfait !", "👍 Génial !"}
		next := ctx
		next.SatisfactionCount++
		return Result{
			Success:     true,
			Message:     acks[ctx.SatisfactionCount%len(acks)],
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}
	}

	if p.lex.IsGreeting(msg) {
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("Hey ! 🫧 On bosse sur %s\n\nQu'est-ce qu'on fait ?", cfg.Label),
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     ctx,
		}
	}

	// Fallback: unchanged context, so repeating an unrecognized message
	// yields the identical result.
	base := p.suggestions(cfg, section, ctx.ModificationCount)
	if len(base) > 3 {
		base = base[:3]
	}
	return Result{
		Success:     false,
		Message:     "🤔 J'ai pas compris...\n\nEssaie :\n• \"Met le titre en rose\"\n• \"La disposition\"\n• \"Les couleurs\"",
		Suggestions: append([]string{"Aide"}, base...),
		Context:     ctx,
	}
}
