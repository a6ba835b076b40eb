package store

import (
	"testing"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

func TestUpdateContentAndUndo(t *testing.T) {
	s := New(Config{})
	before := s.GetSection("hero").Content["title"]

	s.UpdateContent("hero", "title", "Nouveau titre")
	if got := s.GetSection("hero").Content["title"]; got != "Nouveau titre" {
		t.Fatalf("title = %q", got)
	}
	if !s.CanUndo() {
		t.Fatal("CanUndo = false after a mutation")
	}

	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := s.GetSection("hero").Content["title"]; got != before {
		t.Errorf("title after undo = %q, want %q", got, before)
	}

	if !s.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}
	if !s.Redo() {
		t.Fatal("Redo returned false")
	}
	if got := s.GetSection("hero").Content["title"]; got != "Nouveau titre" {
		t.Errorf("title after redo = %q", got)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	s := New(Config{})
	if s.Undo() {
		t.Error("Undo succeeded with empty history")
	}
	if s.CanUndo() {
		t.Error("CanUndo = true with empty history")
	}
}

func TestHistoryCap(t *testing.T) {
	s := New(Config{MaxHistory: 3})
	for i := 0; i < 10; i++ {
		s.UpdateContent("hero", "title", "v")
	}
	undone := 0
	for s.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undone = %d, want the cap of 3", undone)
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	s := New(Config{})
	s.UpdateContent("hero", "title", "a")
	s.Undo()
	s.UpdateContent("hero", "title", "b")
	if s.CanRedo() {
		t.Error("redo stack should clear on a new mutation")
	}
}

func TestColorChangesSkipHistory(t *testing.T) {
	s := New(Config{})
	s.UpdateSectionColor("hero", "title", "#F472B6")
	if s.CanUndo() {
		t.Error("color preview entered the undo history")
	}
	if got := s.GetSection("hero").Colors["title"]; got != "#F472B6" {
		t.Errorf("color = %q", got)
	}
}

func TestAddItemAssignsID(t *testing.T) {
	s := New(Config{})
	before := len(s.GetSection("features").Items)

	id := s.AddItem("features", &site.FeatureItem{Title: "Export", Icon: "Rocket"})
	if id == "" {
		t.Fatal("AddItem returned an empty id")
	}
	items := s.GetSection("features").Items
	if len(items) != before+1 {
		t.Fatalf("items = %d, want %d", len(items), before+1)
	}
	if items[len(items)-1].ItemID() != id {
		t.Errorf("ItemID = %q, want %q", items[len(items)-1].ItemID(), id)
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	s := New(Config{})
	s.UpdateItem("features", 0, map[string]any{"title": "Renommée"})
	if got := s.GetSection("features").Items[0].Label(); got != "Renommée" {
		t.Errorf("Label = %q", got)
	}

	before := len(s.GetSection("features").Items)
	s.RemoveItem("features", 0)
	if got := len(s.GetSection("features").Items); got != before-1 {
		t.Errorf("items = %d, want %d", got, before-1)
	}

	// Out-of-range indexes are ignored.
	s.RemoveItem("features", 99)
	if got := len(s.GetSection("features").Items); got != before-1 {
		t.Errorf("items = %d after out-of-range remove", got)
	}
}

func TestUndoRestoresItems(t *testing.T) {
	s := New(Config{})
	before := len(s.GetSection("features").Items)
	s.RemoveItem("features", 0)
	s.Undo()
	items := s.GetSection("features").Items
	if len(items) != before {
		t.Fatalf("items = %d after undo, want %d", len(items), before)
	}
	// Restored items decode back to their concrete kinds.
	if _, ok := items[0].(*site.FeatureItem); !ok {
		t.Errorf("restored item is %T, want *site.FeatureItem", items[0])
	}
}

func TestSetSectionVisible(t *testing.T) {
	s := New(Config{})
	s.SetSectionVisible("pricing", false)
	if s.Site().SectionsVisibility["pricing"] {
		t.Error("pricing still visible")
	}
	order := s.Site().VisibleOrder()
	for _, id := range order {
		if id == "pricing" {
			t.Error("pricing in VisibleOrder while hidden")
		}
	}
}

func TestResetSection(t *testing.T) {
	s := New(Config{})
	s.UpdateContent("hero", "title", "Bidouillé")
	s.ResetSection("hero")
	fresh := site.Template(site.TypeHero)
	if got := s.GetSection("hero").Content["title"]; got != fresh.Content["title"] {
		t.Errorf("title = %q, want template default %q", got, fresh.Content["title"])
	}
}
