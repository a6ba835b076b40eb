// Package store holds the working site state. The in-memory Store is the
// single mutation point for the editor: every change goes through it so undo
// history stays consistent, and the SQLite layer persists named sites across
// sessions.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// DefaultMaxHistory bounds the undo stack.
const DefaultMaxHistory = 50

// Config tunes a Store. The zero value uses the default site and history cap.
type Config struct {
	// Site is the initial site. Nil means site.DefaultSite().
	Site *site.Site
	// MaxHistory caps the undo stack; 0 means DefaultMaxHistory.
	MaxHistory int
}

// Store is the in-memory working copy of one site, with bounded undo/redo.
// All methods are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	site       *site.Site
	history    [][]byte
	redo       [][]byte
	maxHistory int
}

// New returns a Store over the given site.
func New(cfg Config) *Store {
	s := cfg.Site
	if s == nil {
		s = site.DefaultSite()
	}
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Store{site: s, maxHistory: maxHistory}
}

// snapshot pushes the current state onto the undo stack and clears the redo
// stack. Call before any history-visible mutation, with mu held.
func (s *Store) snapshot() {
	data, err := json.Marshal(s.site)
	if err != nil {
		// The site model round-trips by construction; a marshal failure here
		// means a programming error in the item types.
		panic(fmt.Sprintf("store: snapshot: %v", err))
	}
	s.history = append(s.history, data)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
	s.redo = nil
}

func (s *Store) restore(data []byte) {
	var restored site.Site
	if err := json.Unmarshal(data, &restored); err != nil {
		panic(fmt.Sprintf("store: restore snapshot: %v", err))
	}
	s.site = &restored
}

// Site returns the live site. Callers must treat it as read-only; mutations
// go through the Store methods.
func (s *Store) Site() *site.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.site
}

// GetSection returns the section with the given id, or nil.
func (s *Store) GetSection(id string) *site.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.site.Section(id)
}

// UpdateContent sets one text field of a section.
func (s *Store) UpdateContent(id, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil {
		return
	}
	s.snapshot()
	if sec.Content == nil {
		sec.Content = map[string]string{}
	}
	sec.Content[field] = value
}

// UpdateLayoutVariant switches a section's layout variant.
func (s *Store) UpdateLayoutVariant(id, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil {
		return
	}
	s.snapshot()
	sec.Layout.Variant = variant
}

// UpdateSpacing sets a section's vertical spacing.
func (s *Store) UpdateSpacing(id string, spacing site.Spacing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil || !site.ValidSpacing(spacing) {
		return
	}
	s.snapshot()
	sec.Layout.Spacing = spacing
}

// UpdateSectionColor sets one element's color override. Color changes do not
// enter the undo history: the conversational flow previews them live and
// restores the prior value itself on cancel.
func (s *Store) UpdateSectionColor(id, element, hex string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil {
		return
	}
	if sec.Colors == nil {
		sec.Colors = map[string]string{}
	}
	sec.Colors[element] = hex
}

// SetTheme switches the site-wide theme.
func (s *Store) SetTheme(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot()
	s.site.Theme = id
}

// AddItem appends an item to a section's collection, assigns it a fresh id,
// and returns that id.
func (s *Store) AddItem(id string, item site.Item) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil || item == nil {
		return ""
	}
	s.snapshot()
	itemID := uuid.NewString()
	site.SetItemID(item, itemID)
	sec.Items = append(sec.Items, item)
	return itemID
}

// UpdateItem merges a partial field update into one item.
func (s *Store) UpdateItem(id string, index int, updates map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil || index < 0 || index >= len(sec.Items) {
		return
	}
	s.snapshot()
	site.ApplyItem(sec.Items[index], updates)
}

// RemoveItem deletes one item from a section's collection.
func (s *Store) RemoveItem(id string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil || index < 0 || index >= len(sec.Items) {
		return
	}
	s.snapshot()
	sec.Items = append(sec.Items[:index], sec.Items[index+1:]...)
}

// SetSectionVisible toggles a section in the rendered page without removing
// its content.
func (s *Store) SetSectionVisible(id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.site.Section(id) == nil {
		return
	}
	s.snapshot()
	if s.site.SectionsVisibility == nil {
		s.site.SectionsVisibility = map[string]bool{}
	}
	s.site.SectionsVisibility[id] = visible
}

// ResetSection replaces a section with its template defaults.
func (s *Store) ResetSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.site.Section(id)
	if sec == nil {
		return
	}
	fresh := site.Template(sec.Type)
	if fresh == nil {
		return
	}
	s.snapshot()
	for i := range fresh.Items {
		site.SetItemID(fresh.Items[i], uuid.NewString())
	}
	s.site.Sections[id] = fresh
}

// Undo reverts the last history-visible mutation. Returns false when the
// history is empty.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	current, err := json.Marshal(s.site)
	if err != nil {
		panic(fmt.Sprintf("store: snapshot: %v", err))
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.redo = append(s.redo, current)
	s.restore(last)
	return true
}

// Redo reapplies the last undone mutation.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	current, err := json.Marshal(s.site)
	if err != nil {
		panic(fmt.Sprintf("store: snapshot: %v", err))
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.history = append(s.history, current)
	s.restore(last)
	return true
}

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}
