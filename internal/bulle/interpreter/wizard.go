package interpreter

import (
	"fmt"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/detect"
	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// handleAddCommand starts the add flow. A count in the message short-circuits
// the wizard with default-filled items; otherwise the wizard collects fields
// one message at a time.
func (p *Processor) handleAddCommand(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	spec, ok := site.KindFor(section.Type)
	if !ok {
		return Result{Success: false, Message: "🤔 Rien à ajouter ici !", Context: ctx}
	}

	if n, found := detect.Number(p.lex, msg); found && n > 1 {
		count := n
		if count > p.maxItems {
			count = p.maxItems
		}
		base := len(section.Items)
		for i := 0; i < count; i++ {
			p.store.AddItem(ctx.ActiveSection, spec.Default(cfg.ItemName, base+i+1))
		}
		next := ctx
		next.ModificationCount++
		return Result{
			Success:     true,
			Message:     fmt.Sprintf("✅ %d %s ajoutées !\n\nClique dessus pour les personnaliser.", count, cfg.ItemNamePlural),
			Suggestions: p.suggestions(cfg, section, next.ModificationCount),
			Toast:       fmt.Sprintf("✅ %d %s ajoutées", count, cfg.ItemNamePlural),
			Context:     next,
		}
	}

	next := ctx
	next.Mode = ModeItemWizard
	next.Wizard = &Wizard{
		Action:     WizardAdd,
		Fields:     spec.Fields,
		FieldIndex: 0,
		Data:       map[string]any{},
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("✨ Nouvelle %s !\n\n%s", cfg.ItemName, cfg.ItemPrompts[spec.Fields[0]]),
		Context: next,
	}
}

// handleDeleteCommand starts the delete flow. A number in the message skips
// straight to confirmation.
func (p *Processor) handleDeleteCommand(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	if len(section.Items) == 0 {
		return Result{
			Success:     false,
			Message:     "🤷 Rien à supprimer !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     ctx,
		}
	}

	if n, found := detect.Number(p.lex, msg); found {
		if index, ok := resolveIndex(n, len(section.Items)); ok {
			return p.confirmDelete(ctx, cfg, section, index)
		}
	}

	next := ctx
	next.Mode = ModeItemWizard
	next.Wizard = &Wizard{Action: WizardDelete, Stage: StageChooseItem}
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("🗑️ Laquelle supprimer ? (1 à %d)", len(section.Items)),
		Suggestions: []string{"La dernière", "1", "2", "3"},
		Context:     next,
	}
}

// handleWizard advances whichever wizard is pending.
func (p *Processor) handleWizard(msg, original string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	w := ctx.Wizard
	if w == nil {
		next := ctx
		next.Mode = ModeIdle
		return p.dispatch(msg, next, cfg, section)
	}

	// Any refusal word backs out, whatever stage the wizard is at. This runs
	// before yes-matching so "stop" never reads as the yes word "top".
	if p.lex.Matches(msg, lexicon.CategoryNo) {
		next := ctx
		next.Mode = ModeIdle
		next.Wizard = nil
		return Result{
			Success:     true,
			Message:     "↩️ OK, on laisse tomber !",
			Suggestions: p.suggestions(cfg, section, ctx.ModificationCount),
			Context:     next,
		}
	}

	switch w.Action {
	case WizardAdd:
		return p.advanceAddWizard(msg, original, ctx, cfg, section)
	case WizardDelete:
		return p.advanceDeleteWizard(msg, ctx, cfg, section)
	}
	next := ctx
	next.Mode = ModeIdle
	next.Wizard = nil
	return p.dispatch(msg, next, cfg, section)
}

// advanceAddWizard records the answer for the current field, then either asks
// the next question or commits the new item.
func (p *Processor) advanceAddWizard(msg, original string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	w := ctx.Wizard
	field := w.Fields[w.FieldIndex]

	// Icon and color answers go through the detectors so "un éclair" or
	// "violet" work; free-text fields are taken verbatim.
	var value any
	switch field {
	case "icon":
		value = "Star"
		if icon := detect.Icon(p.lex, msg); icon != nil {
			value = icon.Name
		}
	case "color":
		value = "#A78BFA"
		if color := detect.Color(p.lex, msg); color != nil {
			value = color.Hex
		}
	default:
		value = original
	}

	data := make(map[string]any, len(w.Data)+1)
	for k, v := range w.Data {
		data[k] = v
	}
	data[field] = value

	if w.FieldIndex+1 < len(w.Fields) {
		nextField := w.Fields[w.FieldIndex+1]
		next := ctx
		next.Wizard = &Wizard{
			Action:     WizardAdd,
			Fields:     w.Fields,
			FieldIndex: w.FieldIndex + 1,
			Data:       data,
		}
		return Result{
			Success: true,
			Message: cfg.ItemPrompts[nextField],
			Context: next,
		}
	}

	spec, _ := site.KindFor(section.Type)
	item := spec.New(data)
	p.store.AddItem(ctx.ActiveSection, item)

	next := ctx
	next.Mode = ModeIdle
	next.Wizard = nil
	next.ModificationCount++
	name := capitalize(cfg.ItemName)
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("✅ %s ajoutée !", name),
		Suggestions: p.suggestions(cfg, section, next.ModificationCount),
		Toast:       fmt.Sprintf("✅ %s ajoutée", name),
		Context:     next,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// advanceDeleteWizard resolves the target index, then waits for a yes/no.
func (p *Processor) advanceDeleteWizard(msg string, ctx Context, cfg *lexicon.SectionConfig, section *site.Section) Result {
	w := ctx.Wizard

	switch w.Stage {
	case StageChooseItem:
		n, found := detect.Number(p.lex, msg)
		if !found {
			return Result{
				Success:     false,
				Message:     fmt.Sprintf("🤔 Dis-moi un numéro entre 1 et %d !", len(section.Items)),
				Suggestions: []string{"La dernière", "1", "Annuler"},
				Context:     ctx,
			}
		}
		index, ok := resolveIndex(n, len(section.Items))
		if !ok {
			return Result{
				Success:     false,
				Message:     fmt.Sprintf("🤔 Il n'y en a que %d !", len(section.Items)),
				Suggestions: []string{"La dernière", "1", "Annuler"},
				Context:     ctx,
			}
		}
		return p.confirmDelete(ctx, cfg, section, index)

	case StageConfirm:
		if p.lex.Matches(msg, lexicon.CategoryYes) {
			p.store.RemoveItem(ctx.ActiveSection, w.Index)
			next := ctx
			next.Mode = ModeIdle
			next.Wizard = nil
			next.ModificationCount++
			return Result{
				Success:     true,
				Message:     "🗑️ Supprimée !",
				Suggestions: p.suggestions(cfg, section, next.ModificationCount),
				Toast:       "🗑️ Supprimée",
				Context:     next,
			}
		}
		// Refusals never reach here; handleWizard cancels on them first.
		return Result{
			Success:     false,
			Message:     "🤔 Oui ou non ?",
			Suggestions: []string{"Oui", "Non"},
			Context:     ctx,
		}
	}

	next := ctx
	next.Mode = ModeIdle
	next.Wizard = nil
	return p.dispatch(msg, next, cfg, section)
}

// confirmDelete echoes the targeted item and asks for confirmation.
func (p *Processor) confirmDelete(ctx Context, cfg *lexicon.SectionConfig, section *site.Section, index int) Result {
	next := ctx
	next.Mode = ModeItemWizard
	next.Wizard = &Wizard{Action: WizardDelete, Stage: StageConfirm, Index: index}
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("🗑️ Supprimer \"%s\" ?", section.Items[index].Label()),
		Suggestions: []string{"Oui", "Non"},
		Context:     next,
	}
}

// resolveIndex maps a user-facing position (1-based, or the last-item
// sentinel) to a slice index.
func resolveIndex(n, count int) (int, bool) {
	if n == detect.Last {
		return count - 1, count > 0
	}
	if n >= 1 && n <= count {
		return n - 1, true
	}
	return 0, false
}
