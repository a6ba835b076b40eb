package theme

import "testing"

func TestBuiltinThemes(t *testing.T) {
	ids := IDs()
	want := []string{"aurora", "corporate", "pastel", "neon", "minimal"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}
}

func TestByIDFallback(t *testing.T) {
	if got := ByID("aurora").Name; got != "Aurora" {
		t.Errorf("Name = %q, want Aurora", got)
	}
	if got := ByID("does-not-exist").ID; got != DefaultID {
		t.Errorf("unknown id resolved to %q, want %q", got, DefaultID)
	}
}

func TestValid(t *testing.T) {
	for _, id := range IDs() {
		if !Valid(id) {
			t.Errorf("Valid(%q) = false", id)
		}
	}
	if Valid("sunset") {
		t.Error("Valid(sunset) = true for an unknown theme")
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	data := []byte(`
themes:
  - { id: a, name: A, colors: { background: "#000", accentPrimary: "#fff" } }
  - { id: a, name: B, colors: { background: "#000", accentPrimary: "#fff" } }
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestParseRejectsIncompletePalette(t *testing.T) {
	data := []byte(`
themes:
  - { id: a, name: A, colors: { background: "#000" } }
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected incomplete palette error")
	}
}
