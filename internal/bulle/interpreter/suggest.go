package interpreter

import (
	"fmt"

	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// maxSuggestions caps how many chips a single reply carries.
const maxSuggestions = 6

// suggestions builds the contextual chip row: the three base actions, one
// section-specific chip, then progress nudges once the user has made a few
// modifications. Duplicates are dropped and the row is capped.
func (p *Processor) suggestions(cfg *lexicon.SectionConfig, section *site.Section, modCount int) []string {
	out := []string{"Le layout", "Les couleurs", "Le texte"}

	switch {
	case cfg.HasButton:
		out = append(out, "Le bouton")
	case cfg.HasItems() && section != nil && len(section.Items) < 4:
		out = append(out, fmt.Sprintf("Ajouter une %s", cfg.ItemName))
	default:
		out = append(out, "Le thème")
	}

	if modCount >= 3 {
		out = insertAt(out, 2, "✨ Parfait !")
	}
	if modCount >= 5 && cfg.NextSection != "" {
		out = insertAt(out, 3, "➡️ Section suivante")
	}

	return dedupe(out, maxSuggestions)
}

func insertAt(s []string, i int, v string) []string {
	if i >= len(s) {
		return append(s, v)
	}
	s = append(s[:i+1], s[i:]...)
	s[i] = v
	return s
}

func dedupe(s []string, limit int) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, limit)
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
