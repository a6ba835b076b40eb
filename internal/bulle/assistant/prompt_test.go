package assistant

import (
	"strings"
	"testing"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

func TestSystemPromptContent(t *testing.T) {
	s := site.DefaultSite()
	s.Theme = "corporate"
	prompt := SystemPrompt(s, "features")

	for _, want := range []string{
		"Thème global: corporate",
		"Section actuelle: features",
		"updateColor",
		"removeItem",
		"grid-3, grid-2, list",
		"aurora, corporate, pastel, neon, minimal",
		"#F472B6",
		"Zap",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSystemPromptNoSection(t *testing.T) {
	prompt := SystemPrompt(site.DefaultSite(), "")
	if !strings.Contains(prompt, "Aucune section sélectionnée.") {
		t.Error("prompt should say no section is selected")
	}
}

func TestSectionContextItems(t *testing.T) {
	s := site.DefaultSite()
	ctx := SectionContext(s, "pricing")
	if !strings.Contains(ctx, "plans (3)") {
		t.Errorf("context %q should list the plan collection", ctx)
	}
	if !strings.Contains(ctx, "Starter") {
		t.Error("context should name the plans")
	}
}

func TestSectionContextUnknown(t *testing.T) {
	if got := SectionContext(site.DefaultSite(), "nope"); got != "Aucune section sélectionnée." {
		t.Errorf("context = %q", got)
	}
}
