package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
	"github.com/Kiwi570/bulle/internal/bulle/theme"
)

// SectionContext renders the active section for the system prompt: type,
// layout, text content, color overrides and the item collection, so the model
// edits what the user currently sees.
func SectionContext(s *site.Site, sectionID string) string {
	if s == nil || sectionID == "" {
		return "Aucune section sélectionnée."
	}
	sec := s.Section(sectionID)
	if sec == nil {
		return "Aucune section sélectionnée."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Section actuelle: %s (id: %s)\n", sec.Type, sectionID)
	fmt.Fprintf(&b, "Layout: %s\n", sec.Layout.Variant)
	fmt.Fprintf(&b, "Espacement: %s\n", sec.Layout.Spacing)

	content, _ := json.MarshalIndent(sec.Content, "", "  ")
	fmt.Fprintf(&b, "Contenu:\n%s\n", content)

	colors := sec.Colors
	if colors == nil {
		colors = map[string]string{}
	}
	colorsJSON, _ := json.MarshalIndent(colors, "", "  ")
	fmt.Fprintf(&b, "Couleurs:\n%s\n", colorsJSON)

	if cfg, ok := lexicon.SectionFor(sec.Type); ok && cfg.HasItems() {
		labels := make([]string, len(sec.Items))
		for i, item := range sec.Items {
			labels[i] = item.Label()
		}
		fmt.Fprintf(&b, "%s (%d): %s\n", cfg.ItemNamePlural, len(sec.Items), strings.Join(labels, ", "))
	}
	return strings.TrimSpace(b.String())
}

// SystemPrompt builds the instruction set sent as the "system" message. The
// action catalogue, layout options, color and icon tables are generated from
// the same data the local interpreter uses, so both assistants speak the same
// vocabulary.
func SystemPrompt(s *site.Site, sectionID string) string {
	themeID := theme.DefaultID
	if s != nil && s.Theme != "" {
		themeID = s.Theme
	}

	var b strings.Builder
	b.WriteString(`Tu es Bulle 🫧, une assistante créative et amicale pour un éditeur de landing pages.

PERSONNALITÉ:
- Tu es enthousiaste, positive et encourageante
- Tu utilises des emojis avec parcimonie mais de façon pertinente
- Tu donnes des réponses concises et actionnables

CONTEXTE ACTUEL:
`)
	fmt.Fprintf(&b, "Thème global: %s\n", themeID)
	b.WriteString(SectionContext(s, sectionID))

	b.WriteString(`

ACTIONS DISPONIBLES:
Tu peux effectuer ces actions en retournant du JSON:
- updateColor: changer la couleur d'un élément (champs: section, element, color)
- updateLayout: changer le layout de la section (champs: section, layout)
- updateSpacing: changer l'espacement (champs: section, spacing — compact, normal ou spacious)
- updateContent: modifier un texte (champs: section, element, value)
- setTheme: changer le thème global (champ: themeId)
- addItem: ajouter un item (champs: section, item)
- updateItem: modifier un item par son index (champs: section, index, updates)
- removeItem: supprimer un item par son index (champs: section, index)

LAYOUTS PAR SECTION:
`)
	for _, t := range []site.SectionType{site.TypeHero, site.TypeFeatures, site.TypeHowItWorks, site.TypePricing, site.TypeFaq} {
		cfg, ok := lexicon.SectionFor(t)
		if !ok {
			continue
		}
		ids := make([]string, len(cfg.Layouts))
		for i, l := range cfg.Layouts {
			ids[i] = l.ID
		}
		fmt.Fprintf(&b, "- %s: %s\n", t, strings.Join(ids, ", "))
	}

	fmt.Fprintf(&b, "\nTHÈMES: %s\n", strings.Join(theme.IDs(), ", "))

	b.WriteString("\nCOULEURS SUGGÉRÉES:\n")
	seen := make(map[string]struct{})
	count := 0
	for _, c := range lexicon.Default().Colors {
		if _, dup := seen[c.Hex]; dup {
			continue
		}
		seen[c.Hex] = struct{}{}
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Hex)
		count++
		if count == 10 {
			break
		}
	}

	b.WriteString("\nICÔNES (Lucide): ")
	names := make([]string, len(lexicon.Default().Icons))
	for i, ic := range lexicon.Default().Icons {
		names[i] = ic.Name
	}
	b.WriteString(strings.Join(names, ", "))

	b.WriteString(`

FORMAT DE RÉPONSE:
Tu dois TOUJOURS répondre avec un objet JSON valide:
{
  "message": "Ta réponse amicale (1-2 phrases max)",
  "actions": [ { "type": "updateColor", "section": "hero", "element": "title", "color": "#F472B6" } ],
  "suggestions": [ "Suggestion 1", "Suggestion 2" ]
}

RÈGLES IMPORTANTES:
1. Réponds TOUJOURS en JSON valide, sans markdown autour
2. Garde les messages courts et sympas
3. Si tu ne comprends pas, demande des précisions (actions vide)
4. Si aucune section n'est sélectionnée, invite l'utilisateur à en choisir une
5. N'invente pas d'actions qui n'existent pas`)

	return b.String()
}
