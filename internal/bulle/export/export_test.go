package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

func TestHTMLRendersAllSections(t *testing.T) {
	s := site.DefaultSite()
	out := HTML(s, Options{})

	for _, want := range []string{
		`<section id="hero"`,
		`<section id="features"`,
		`<section id="howItWorks"`,
		`<section id="pricing"`,
		`<section id="faq"`,
		`<link rel="stylesheet" href="styles.css">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(out, "<title>Mon Super Site</title>") {
		t.Error("title should default to the site name")
	}
}

func TestHTMLSkipsHiddenSections(t *testing.T) {
	s := site.DefaultSite()
	s.SectionsVisibility["pricing"] = false
	out := HTML(s, Options{})
	if strings.Contains(out, `<section id="pricing"`) {
		t.Error("hidden section rendered")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	s := site.DefaultSite()
	s.Section("hero").Content["title"] = `<script>alert("x")</script>`
	s.Section("hero").Content["titleHighlight"] = ""
	out := HTML(s, Options{})
	if strings.Contains(out, `<script>alert`) {
		t.Fatal("unescaped content in output")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped title")
	}
}

func TestHeroTitleHighlight(t *testing.T) {
	s := site.DefaultSite()
	out := SectionHTML(s.Section("hero"), "hero")
	if !strings.Contains(out, `<span class="text-gradient">parfaite</span>`) {
		t.Error("title highlight not wrapped")
	}
}

func TestFeaturesGridVariant(t *testing.T) {
	s := site.DefaultSite()
	sec := s.Section("features")

	sec.Layout.Variant = "grid-2"
	if out := SectionHTML(sec, "features"); !strings.Contains(out, "features-grid-2") {
		t.Error("grid-2 class missing")
	}
	sec.Layout.Variant = "list"
	if out := SectionHTML(sec, "features"); !strings.Contains(out, "features-list") {
		t.Error("list class missing")
	}
}

func TestSpacingClasses(t *testing.T) {
	s := site.DefaultSite()
	sec := s.Section("hero")

	sec.Layout.Spacing = site.SpacingCompact
	if out := SectionHTML(sec, "hero"); !strings.Contains(out, "section-compact") {
		t.Error("compact class missing")
	}
	sec.Layout.Spacing = site.SpacingSpacious
	if out := SectionHTML(sec, "hero"); !strings.Contains(out, "section-spacious") {
		t.Error("spacious class missing")
	}
}

func TestCSSUsesThemePalette(t *testing.T) {
	s := site.DefaultSite()
	s.Theme = "neon"
	out := CSS(s)
	if !strings.Contains(out, "--color-accent: #22C55E;") {
		t.Error("neon accent missing from stylesheet")
	}
	if !strings.Contains(out, "background-color: #030712;") {
		t.Error("neon background missing from stylesheet")
	}
}

func TestCSSUnknownThemeFallsBack(t *testing.T) {
	s := site.DefaultSite()
	s.Theme = "does-not-exist"
	out := CSS(s)
	if !strings.Contains(out, "thème aurora") {
		t.Error("unknown theme should fall back to the default palette")
	}
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	s := site.DefaultSite()

	if err := Export(s, filepath.Join(dir, "out")); err != nil {
		t.Fatalf("Export: %v", err)
	}

	html, err := os.ReadFile(filepath.Join(dir, "out", "index.html"))
	if err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	if !strings.Contains(string(html), `href="styles.css"`) {
		t.Error("index.html should link the stylesheet")
	}

	css, err := os.ReadFile(filepath.Join(dir, "out", "styles.css"))
	if err != nil {
		t.Fatalf("read styles.css: %v", err)
	}
	if !strings.Contains(string(css), "--color-accent") {
		t.Error("styles.css missing theme variables")
	}
}

func TestExportStandalone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")

	if err := ExportStandalone(site.DefaultSite(), path); err != nil {
		t.Fatalf("ExportStandalone: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<style>") {
		t.Error("standalone export should inline the stylesheet")
	}
	if strings.Contains(out, `href="styles.css"`) {
		t.Error("standalone export should not link an external stylesheet")
	}
}
