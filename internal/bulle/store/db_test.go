package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadSite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := site.DefaultSite()
	s.Name = "ma-landing"
	s.Theme = "neon"
	s.Section("hero").Content["title"] = "Bienvenue"

	if err := db.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite: %v", err)
	}

	loaded, err := db.LoadSite(ctx, "ma-landing")
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if loaded.Theme != "neon" {
		t.Errorf("Theme = %q", loaded.Theme)
	}
	if got := loaded.Section("hero").Content["title"]; got != "Bienvenue" {
		t.Errorf("title = %q", got)
	}
	// Items decode back to their concrete kinds.
	items := loaded.Section("features").Items
	if len(items) == 0 {
		t.Fatal("no feature items after reload")
	}
	if _, ok := items[0].(*site.FeatureItem); !ok {
		t.Errorf("item is %T, want *site.FeatureItem", items[0])
	}
}

func TestSaveSiteUpsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := site.DefaultSite()
	s.Name = "x"
	if err := db.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite: %v", err)
	}
	s.Theme = "minimal"
	if err := db.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite (second): %v", err)
	}

	loaded, err := db.LoadSite(ctx, "x")
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if loaded.Theme != "minimal" {
		t.Errorf("Theme = %q after upsert", loaded.Theme)
	}

	names, err := db.ListSites(ctx)
	if err != nil {
		t.Fatalf("ListSites: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("ListSites = %v, want one entry", names)
	}
}

func TestLoadSiteNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadSite(context.Background(), "nope"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("err = %v, want ErrSiteNotFound", err)
	}
}

func TestSaveSiteEmptyName(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveSite(context.Background(), site.DefaultSite()); err == nil {
		t.Error("expected an error for an unnamed site")
	}
}

func TestDeleteSite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := site.DefaultSite()
	s.Name = "x"
	if err := db.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite: %v", err)
	}
	if err := db.DeleteSite(ctx, "x"); err != nil {
		t.Fatalf("DeleteSite: %v", err)
	}
	if _, err := db.LoadSite(ctx, "x"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("err = %v after delete, want ErrSiteNotFound", err)
	}
	// Deleting again is a no-op.
	if err := db.DeleteSite(ctx, "x"); err != nil {
		t.Errorf("second DeleteSite: %v", err)
	}
}

func TestTurnLog(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.WriteTurn(ctx, "tr-1", "ma-landing", "hero", "met le titre en rose", SourceLocal, "ok", ""); err != nil {
		t.Fatalf("WriteTurn: %v", err)
	}
	if err := db.WriteTurn(ctx, "tr-2", "ma-landing", "", "blabla", SourceRemote, "error", "timeout"); err != nil {
		t.Fatalf("WriteTurn: %v", err)
	}

	entries, err := db.RecentTurns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].TraceID != "tr-2" {
		t.Errorf("first entry = %q, want tr-2", entries[0].TraceID)
	}
	if !entries[0].ErrorMessage.Valid || entries[0].ErrorMessage.String != "timeout" {
		t.Errorf("ErrorMessage = %+v", entries[0].ErrorMessage)
	}
	if entries[1].SectionID.String != "hero" {
		t.Errorf("SectionID = %+v", entries[1].SectionID)
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	settings := NewSettings(db)

	if _, err := settings.Get(ctx, SettingAssistantModel); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("err = %v, want ErrSettingNotFound", err)
	}

	if err := settings.Set(ctx, SettingAssistantModel, "gpt-4o-mini"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := settings.Get(ctx, SettingAssistantModel)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "gpt-4o-mini" {
		t.Errorf("value = %q", got)
	}

	if err := settings.Set(ctx, SettingAssistantModel, "gpt-4o"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	all, err := settings.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all[SettingAssistantModel] != "gpt-4o" {
		t.Errorf("List = %v", all)
	}

	if err := settings.Delete(ctx, SettingAssistantModel); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := settings.Get(ctx, SettingAssistantModel); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("err = %v after delete", err)
	}
}
