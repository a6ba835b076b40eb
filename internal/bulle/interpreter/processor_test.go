package interpreter

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// memStore is a minimal Store over a Site, just enough for turn tests.
type memStore struct {
	site    *site.Site
	nextID  int
	undone  int
	canUndo bool
}

func newMemStore() *memStore {
	return &memStore{site: site.DefaultSite()}
}

func (s *memStore) GetSection(id string) *site.Section {
	return s.site.Section(id)
}

func (s *memStore) UpdateContent(id, field, value string) {
	if sec := s.site.Section(id); sec != nil {
		sec.Content[field] = value
	}
}

func (s *memStore) UpdateLayoutVariant(id, variant string) {
	if sec := s.site.Section(id); sec != nil {
		sec.Layout.Variant = variant
	}
}

func (s *memStore) UpdateSectionColor(id, element, hex string) {
	if sec := s.site.Section(id); sec != nil {
		if sec.Colors == nil {
			sec.Colors = map[string]string{}
		}
		sec.Colors[element] = hex
	}
}

func (s *memStore) AddItem(id string, item site.Item) string {
	sec := s.site.Section(id)
	if sec == nil {
		return ""
	}
	s.nextID++
	itemID := fmt.Sprintf("t%d", s.nextID)
	site.SetItemID(item, itemID)
	sec.Items = append(sec.Items, item)
	return itemID
}

func (s *memStore) RemoveItem(id string, index int) {
	sec := s.site.Section(id)
	if sec == nil || index < 0 || index >= len(sec.Items) {
		return
	}
	sec.Items = append(sec.Items[:index], sec.Items[index+1:]...)
}

func (s *memStore) Undo() bool {
	if !s.canUndo {
		return false
	}
	s.undone++
	return true
}

func (s *memStore) CanUndo() bool { return s.canUndo }

func TestProcessTurnNoActiveSection(t *testing.T) {
	p := New(newMemStore(), Config{})
	res := p.ProcessTurn("met le titre en rose", Context{})
	if res.Success {
		t.Fatal("expected failure without an active section")
	}
	if len(res.Suggestions) == 0 {
		t.Error("expected section suggestions")
	}
}

func TestProcessTurnColorPreviewAndCommit(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("met le titre en rose", NewContext("hero"))
	if !res.Success {
		t.Fatalf("ProcessTurn failed: %s", res.Message)
	}
	if res.Context.Mode != ModeColorPreview {
		t.Fatalf("mode = %v, want ModeColorPreview", res.Context.Mode)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#F472B6" {
		t.Errorf("title color = %q, want #F472B6", got)
	}

	res = p.ProcessTurn("oui", res.Context)
	if res.Context.Mode != ModeIdle {
		t.Errorf("mode after commit = %v, want ModeIdle", res.Context.Mode)
	}
	if res.Context.ModificationCount != 1 {
		t.Errorf("ModificationCount = %d, want 1", res.Context.ModificationCount)
	}
	if res.Context.LastSubject != "title" {
		t.Errorf("LastSubject = %q, want title", res.Context.LastSubject)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#F472B6" {
		t.Errorf("title color after commit = %q, want #F472B6", got)
	}
}

func TestProcessTurnColorPreviewRollback(t *testing.T) {
	store := newMemStore()
	store.site.Section("hero").Colors["title"] = "#FFFFFF"
	p := New(store, Config{})

	res := p.ProcessTurn("met le titre en vert", NewContext("hero"))
	if got := store.site.Section("hero").Colors["title"]; got != "#34D399" {
		t.Fatalf("preview color = %q, want #34D399", got)
	}

	res = p.ProcessTurn("non", res.Context)
	if got := store.site.Section("hero").Colors["title"]; got != "#FFFFFF" {
		t.Errorf("color after rollback = %q, want #FFFFFF", got)
	}
	if res.Context.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", res.Context.Mode)
	}
	if res.Context.ModificationCount != 0 {
		t.Errorf("ModificationCount = %d, want 0 after cancel", res.Context.ModificationCount)
	}
}

func TestProcessTurnLastSubjectEllipsis(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("met le titre en rose", NewContext("hero"))
	res = p.ProcessTurn("oui", res.Context)

	// "en bleu" with no element names the last subject.
	res = p.ProcessTurn("en bleu", res.Context)
	if res.Context.Mode != ModeColorPreview {
		t.Fatalf("mode = %v, want ModeColorPreview", res.Context.Mode)
	}
	if res.Context.ColorElement != "title" {
		t.Errorf("ColorElement = %q, want title", res.Context.ColorElement)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#3B82F6" {
		t.Errorf("title color = %q, want #3B82F6", got)
	}
}

func TestProcessTurnColorSelectFlow(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("les couleurs", NewContext("hero"))
	if res.Context.Mode != ModeColorSelect {
		t.Fatalf("mode = %v, want ModeColorSelect", res.Context.Mode)
	}

	res = p.ProcessTurn("le titre", res.Context)
	if res.Context.Mode != ModeColorTarget {
		t.Fatalf("mode = %v, want ModeColorTarget", res.Context.Mode)
	}
	if res.Context.PendingElement != "title" {
		t.Fatalf("PendingElement = %q, want title", res.Context.PendingElement)
	}

	res = p.ProcessTurn("violet", res.Context)
	if res.Context.Mode != ModeColorPreview {
		t.Fatalf("mode = %v, want ModeColorPreview", res.Context.Mode)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#A78BFA" {
		t.Errorf("title color = %q, want #A78BFA", got)
	}

	res = p.ProcessTurn("valider", res.Context)
	if res.Context.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle after commit", res.Context.Mode)
	}
}

func TestProcessTurnHexColor(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("met le titre en #ff5500", NewContext("hero"))
	if res.Context.Mode != ModeColorPreview {
		t.Fatalf("mode = %v, want ModeColorPreview", res.Context.Mode)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#FF5500" {
		t.Errorf("title color = %q, want #FF5500", got)
	}
}

func TestProcessTurnLayoutPreview(t *testing.T) {
	store := newMemStore()
	before := store.site.Section("features").Layout.Variant
	p := New(store, Config{})

	res := p.ProcessTurn("passe en 2 colonnes", NewContext("features"))
	if res.Context.Mode != ModeLayoutPreview {
		t.Fatalf("mode = %v, want ModeLayoutPreview", res.Context.Mode)
	}
	if got := store.site.Section("features").Layout.Variant; got != "grid-2" {
		t.Errorf("layout = %q, want grid-2", got)
	}

	// Cycling to another variant stays silent and keeps the rollback.
	res2 := p.ProcessTurn("liste", res.Context)
	if !res2.SilentPreview {
		t.Error("expected silent preview when cycling layouts")
	}
	if res2.Context.LayoutRollback != before {
		t.Errorf("LayoutRollback = %q, want %q", res2.Context.LayoutRollback, before)
	}

	res3 := p.ProcessTurn("annuler", res2.Context)
	if got := store.site.Section("features").Layout.Variant; got != before {
		t.Errorf("layout after rollback = %q, want %q", got, before)
	}
	if res3.Context.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", res3.Context.Mode)
	}
}

func TestProcessTurnTextEdit(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("le titre", NewContext("hero"))
	if res.Context.Mode != ModeTextEdit {
		t.Fatalf("mode = %v, want ModeTextEdit", res.Context.Mode)
	}
	if !strings.Contains(res.Hint, "Actuel") {
		t.Errorf("hint %q should show the current value", res.Hint)
	}

	res = p.ProcessTurn("Créez votre site en 5 minutes", res.Context)
	if got := store.site.Section("hero").Content["title"]; got != "Créez votre site en 5 minutes" {
		t.Errorf("title = %q", got)
	}
	if res.Context.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", res.Context.Mode)
	}
	if res.Context.LastSubject != "title" {
		t.Errorf("LastSubject = %q, want title", res.Context.LastSubject)
	}
}

func TestProcessTurnTextEditPreviewTruncation(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	// Accented characters around the cut point must not be split mid-rune.
	long := strings.Repeat("é", 60)
	res := p.ProcessTurn("le titre", NewContext("hero"))
	res = p.ProcessTurn(long, res.Context)
	if !res.Success {
		t.Fatalf("ProcessTurn failed: %s", res.Message)
	}
	if !utf8.ValidString(res.Message) {
		t.Fatalf("message is not valid UTF-8: %q", res.Message)
	}
	want := strings.Repeat("é", 50) + "..."
	if !strings.Contains(res.Message, want) {
		t.Errorf("message %q should preview the first 50 characters", res.Message)
	}
	if got := store.site.Section("hero").Content["title"]; got != long {
		t.Errorf("stored title truncated: %d chars", len(got))
	}
}

func TestProcessTurnTextEditCancel(t *testing.T) {
	store := newMemStore()
	before := store.site.Section("hero").Content["title"]
	p := New(store, Config{})

	res := p.ProcessTurn("le titre", NewContext("hero"))
	res = p.ProcessTurn("annuler", res.Context)
	if got := store.site.Section("hero").Content["title"]; got != before {
		t.Errorf("title changed on cancel: %q", got)
	}
	if res.Context.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", res.Context.Mode)
	}
}

func TestProcessTurnBulkAddCapped(t *testing.T) {
	store := newMemStore()
	before := len(store.site.Section("features").Items)
	p := New(store, Config{})

	res := p.ProcessTurn("ajoute 9 features", NewContext("features"))
	if !res.Success {
		t.Fatalf("ProcessTurn failed: %s", res.Message)
	}
	got := len(store.site.Section("features").Items) - before
	if got != DefaultMaxItemsPerAdd {
		t.Errorf("added %d items, want %d", got, DefaultMaxItemsPerAdd)
	}
}

func TestProcessTurnAddWizard(t *testing.T) {
	store := newMemStore()
	before := len(store.site.Section("features").Items)
	p := New(store, Config{})

	res := p.ProcessTurn("ajoute une feature", NewContext("features"))
	if res.Context.Mode != ModeItemWizard {
		t.Fatalf("mode = %v, want ModeItemWizard", res.Context.Mode)
	}

	res = p.ProcessTurn("Export instantané", res.Context)
	res = p.ProcessTurn("Ton site en un clic", res.Context)
	res = p.ProcessTurn("une fusée", res.Context)
	res = p.ProcessTurn("vert", res.Context)

	if res.Context.Mode != ModeIdle {
		t.Fatalf("mode = %v, want ModeIdle after wizard", res.Context.Mode)
	}
	items := store.site.Section("features").Items
	if len(items) != before+1 {
		t.Fatalf("items = %d, want %d", len(items), before+1)
	}
	feat, ok := items[len(items)-1].(*site.FeatureItem)
	if !ok {
		t.Fatalf("new item is %T, want *site.FeatureItem", items[len(items)-1])
	}
	if feat.Title != "Export instantané" {
		t.Errorf("Title = %q", feat.Title)
	}
	if feat.Icon != "Rocket" {
		t.Errorf("Icon = %q, want Rocket", feat.Icon)
	}
	if feat.Color != "#34D399" {
		t.Errorf("Color = %q, want #34D399", feat.Color)
	}
}

func TestProcessTurnAddWizardCancel(t *testing.T) {
	store := newMemStore()
	before := len(store.site.Section("features").Items)
	p := New(store, Config{})

	for _, word := range []string{"cancel", "oublie", "laisse tomber", "stop"} {
		res := p.ProcessTurn("ajoute une feature", NewContext("features"))
		if res.Context.Mode != ModeItemWizard {
			t.Fatalf("mode = %v, want ModeItemWizard", res.Context.Mode)
		}

		res = p.ProcessTurn(word, res.Context)
		if res.Context.Mode != ModeIdle {
			t.Errorf("%q: mode = %v, want ModeIdle", word, res.Context.Mode)
		}
		if res.Context.Wizard != nil {
			t.Errorf("%q: wizard survived the cancel", word)
		}
	}
	if got := len(store.site.Section("features").Items); got != before {
		t.Errorf("items = %d, want %d untouched", got, before)
	}
}

func TestProcessTurnDeleteLast(t *testing.T) {
	store := newMemStore()
	items := store.site.Section("features").Items
	lastLabel := items[len(items)-1].Label()
	before := len(items)
	p := New(store, Config{})

	res := p.ProcessTurn("supprime la dernière", NewContext("features"))
	if res.Context.Mode != ModeItemWizard {
		t.Fatalf("mode = %v, want ModeItemWizard", res.Context.Mode)
	}
	if !strings.Contains(res.Message, lastLabel) {
		t.Errorf("confirmation %q should name %q", res.Message, lastLabel)
	}

	res = p.ProcessTurn("oui", res.Context)
	if got := len(store.site.Section("features").Items); got != before-1 {
		t.Errorf("items = %d, want %d", got, before-1)
	}
}

func TestProcessTurnDeleteOutOfRange(t *testing.T) {
	store := newMemStore()
	before := len(store.site.Section("features").Items)
	p := New(store, Config{})

	res := p.ProcessTurn("supprime", NewContext("features"))
	res = p.ProcessTurn("42", res.Context)
	if res.Success {
		t.Error("expected failure for an out-of-range index")
	}
	if res.Context.Mode != ModeItemWizard {
		t.Errorf("mode = %v, wizard should survive a bad index", res.Context.Mode)
	}
	if got := len(store.site.Section("features").Items); got != before {
		t.Errorf("items = %d, nothing should be deleted", got)
	}
}

func TestProcessTurnDeleteEmpty(t *testing.T) {
	store := newMemStore()
	store.site.Section("features").Items = nil
	p := New(store, Config{})

	res := p.ProcessTurn("supprime une feature", NewContext("features"))
	if res.Success {
		t.Error("expected failure when there is nothing to delete")
	}
}

func TestProcessTurnFallbackIdempotent(t *testing.T) {
	p := New(newMemStore(), Config{})
	ctx := NewContext("hero")

	first := p.ProcessTurn("xyzzy frobnicate", ctx)
	second := p.ProcessTurn("xyzzy frobnicate", first.Context)

	if first.Success || second.Success {
		t.Error("gibberish should not succeed")
	}
	if first.Message != second.Message {
		t.Errorf("fallback not stable: %q vs %q", first.Message, second.Message)
	}
	if second.Context != first.Context {
		t.Error("fallback should leave the context unchanged")
	}
}

func TestProcessTurnContextIsolation(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	heroCtx := NewContext("hero")
	featCtx := NewContext("features")

	res := p.ProcessTurn("met le titre en rose", heroCtx)
	if res.Context.Mode != ModeColorPreview {
		t.Fatalf("mode = %v", res.Context.Mode)
	}

	// The other conversation is untouched: same message there targets its
	// own section and starts from idle.
	res2 := p.ProcessTurn("met le titre en bleu", featCtx)
	if res2.Context.ActiveSection != "features" {
		t.Errorf("ActiveSection = %q", res2.Context.ActiveSection)
	}
	if featCtx.Mode != ModeIdle {
		t.Error("input context mutated")
	}
	if got := store.site.Section("features").Colors["title"]; got != "#3B82F6" {
		t.Errorf("features title = %q, want #3B82F6", got)
	}
	if got := store.site.Section("hero").Colors["title"]; got != "#F472B6" {
		t.Errorf("hero title = %q, want #F472B6", got)
	}
}

func TestProcessTurnNextSection(t *testing.T) {
	p := New(newMemStore(), Config{})

	res := p.ProcessTurn("section suivante", NewContext("hero"))
	if res.Action != ActionNavigate {
		t.Fatalf("action = %q, want navigate", res.Action)
	}
	if res.NavigateTo != "features" {
		t.Errorf("NavigateTo = %q, want features", res.NavigateTo)
	}

	res = p.ProcessTurn("suivante", NewContext("faq"))
	if res.Action == ActionNavigate {
		t.Error("faq has no next section")
	}
	if !strings.Contains(res.Message, "Exporter") {
		t.Errorf("message %q should offer the export", res.Message)
	}
}

func TestProcessTurnExport(t *testing.T) {
	p := New(newMemStore(), Config{})
	res := p.ProcessTurn("exporte mon site", NewContext("hero"))
	if res.Action != ActionExport {
		t.Errorf("action = %q, want export", res.Action)
	}
}

func TestProcessTurnUndo(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})

	res := p.ProcessTurn("annule", NewContext("hero"))
	if res.Success {
		t.Error("undo with empty history should fail")
	}

	store.canUndo = true
	res = p.ProcessTurn("annule", NewContext("hero"))
	if !res.Success {
		t.Errorf("undo failed: %s", res.Message)
	}
	if store.undone != 1 {
		t.Errorf("undone = %d, want 1", store.undone)
	}
}

func TestProcessTurnAcknowledgementsRotate(t *testing.T) {
	p := New(newMemStore(), Config{})
	ctx := NewContext("hero")

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		res := p.ProcessTurn("super", ctx)
		seen[res.Message] = true
		ctx = res.Context
	}
	if len(seen) != 3 {
		t.Errorf("got %d distinct acknowledgements, want 3", len(seen))
	}
	if ctx.SatisfactionCount != 3 {
		t.Errorf("SatisfactionCount = %d, want 3", ctx.SatisfactionCount)
	}
}

func TestSuggestionsProgression(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})
	heroSec := store.site.Section("hero")
	heroCfg, _ := sectionConfig(t, "hero")

	base := p.suggestions(heroCfg, heroSec, 0)
	if len(base) < 4 {
		t.Fatalf("suggestions = %v", base)
	}
	if base[3] != "Le bouton" {
		t.Errorf("hero chip = %q, want Le bouton", base[3])
	}

	warm := p.suggestions(heroCfg, heroSec, 3)
	if warm[2] != "✨ Parfait !" {
		t.Errorf("warm[2] = %q", warm[2])
	}

	hot := p.suggestions(heroCfg, heroSec, 5)
	if hot[3] != "➡️ Section suivante" {
		t.Errorf("hot[3] = %q", hot[3])
	}
	if len(hot) > maxSuggestions {
		t.Errorf("len = %d, cap is %d", len(hot), maxSuggestions)
	}
}

func TestSuggestionsAddChipWhenFewItems(t *testing.T) {
	store := newMemStore()
	p := New(store, Config{})
	sec := store.site.Section("features")
	sec.Items = sec.Items[:2]
	cfg, _ := sectionConfig(t, "features")

	got := p.suggestions(cfg, sec, 0)
	found := false
	for _, s := range got {
		if s == "Ajouter une feature" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %v missing the add chip", got)
	}
}

func sectionConfig(t *testing.T, typ site.SectionType) (*lexicon.SectionConfig, bool) {
	t.Helper()
	cfg, ok := lexicon.SectionFor(typ)
	if !ok {
		t.Fatalf("no section config for %q", typ)
	}
	return cfg, ok
}
