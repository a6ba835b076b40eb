package interpreter

import (
	"unicode/utf8"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// tip pairs a content condition with the coaching hint shown when it holds.
type tip struct {
	when func(*site.Section) bool
	text string
}

// tips lists, per section type, the hints offered when the user lands on a
// section. The first condition that holds wins.
var tips = map[site.SectionType][]tip{
	site.TypeHero: {
		{func(s *site.Section) bool { return s.Content["badge"] == "" }, "💡 Un badge attire l'œil !"},
		{func(s *site.Section) bool { return utf8.RuneCountInString(s.Content["title"]) > 50 }, "💡 Un titre court est plus impactant !"},
	},
	site.TypeFeatures: {
		{func(s *site.Section) bool { return len(s.Items) < 3 }, "💡 3 features minimum !"},
	},
	site.TypePricing: {
		{noPlanHighlighted, "💡 Mets en avant ton meilleur plan !"},
	},
	site.TypeFaq: {
		{func(s *site.Section) bool { return len(s.Items) < 3 }, "💡 3 questions minimum !"},
	},
}

func noPlanHighlighted(s *site.Section) bool {
	for _, it := range s.Items {
		if plan, ok := it.(*site.PlanItem); ok && plan.Highlighted {
			return false
		}
	}
	return true
}

// ProactiveTip returns the first hint whose condition holds for the section,
// or "" when its content needs no nudge.
func ProactiveTip(section *site.Section) string {
	if section == nil {
		return ""
	}
	for _, t := range tips[section.Type] {
		if t.when(section) {
			return t.text
		}
	}
	return ""
}
