// Package lexicon holds the static keyword tables the local assistant matches
// free text against: color names, synonym groups, icon keywords, French number
// words and per-section-type configuration.
//
// The tables are data, not code: the defaults ship as embedded YAML and are
// parsed + validated on first use, so an added locale or an extended synonym
// group is a data change that never touches the state machine.
package lexicon

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Synonym categories understood by Matches. These are the matcher's public
// vocabulary; the word lists behind them live in the YAML tables.
const (
	CategoryLayout   = "layout"
	CategoryColors   = "colors"
	CategoryText     = "text"
	CategoryTitle    = "title"
	CategorySubtitle = "subtitle"
	CategoryBadge    = "badge"
	CategoryButton   = "button"
	CategoryChange   = "change"
	CategoryAdd      = "add"
	CategoryDelete   = "delete"
	CategoryYes      = "yes"
	CategoryNo       = "no"
)

// Color is one named color entry.
type Color struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// Icon is one catalog entry mapping an icon name to its trigger keywords.
type Icon struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon bundles all keyword tables. It is immutable after Parse and safe
// for concurrent use.
type Lexicon struct {
	Colors    []Color             `yaml:"colors"`
	Synonyms  map[string][]string `yaml:"synonyms"`
	Icons     []Icon              `yaml:"icons"`
	Numbers   map[string]int      `yaml:"numbers"`
	Greetings []string            `yaml:"greetings"`
}

// Parse decodes a lexicon YAML document and validates it. Color entries are
// re-sorted longest-name-first so that substring scans prefer the most
// specific name ("orange" must win over "or").
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("lexicon parse: %w", err)
	}
	if err := lex.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(lex.Colors, func(i, j int) bool {
		return len(lex.Colors[i].Name) > len(lex.Colors[j].Name)
	})
	return &lex, nil
}

func (l *Lexicon) validate() error {
	if len(l.Colors) == 0 {
		return fmt.Errorf("lexicon: colors table must not be empty")
	}
	for i, c := range l.Colors {
		if c.Name == "" || !strings.HasPrefix(c.Hex, "#") {
			return fmt.Errorf("lexicon: colors[%d] (%q): name and #hex are required", i, c.Name)
		}
	}
	for _, cat := range []string{
		CategoryLayout, CategoryColors, CategoryText,
		CategoryTitle, CategorySubtitle, CategoryBadge, CategoryButton,
		CategoryChange, CategoryAdd, CategoryDelete,
		CategoryYes, CategoryNo,
	} {
		if len(l.Synonyms[cat]) == 0 {
			return fmt.Errorf("lexicon: synonym category %q is missing or empty", cat)
		}
	}
	for i, ic := range l.Icons {
		if ic.Name == "" || len(ic.Keywords) == 0 {
			return fmt.Errorf("lexicon: icons[%d] (%q): name and keywords are required", i, ic.Name)
		}
	}
	return nil
}

// Matches reports whether any synonym of the given category occurs as a
// substring of text. Unknown categories never match.
func (l *Lexicon) Matches(text, category string) bool {
	for _, s := range l.Synonyms[category] {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// FindColor scans text for a named color, longest name first, and returns the
// first hit or nil.
func (l *Lexicon) FindColor(text string) *Color {
	for i := range l.Colors {
		if strings.Contains(text, l.Colors[i].Name) {
			c := l.Colors[i]
			return &c
		}
	}
	return nil
}

// FindIcon scans text for an icon keyword and returns the catalog entry or nil.
func (l *Lexicon) FindIcon(text string) *Icon {
	for i := range l.Icons {
		for _, k := range l.Icons[i].Keywords {
			if strings.Contains(text, k) {
				ic := l.Icons[i]
				return &ic
			}
		}
	}
	return nil
}

// FindNumberWord scans text for a number word ("un".."cinq", "dernier" → −1).
func (l *Lexicon) FindNumberWord(text string) (int, bool) {
	// Deterministic scan order: longer words first so "dernière" is not
	// shadowed by a shorter entry.
	words := make([]string, 0, len(l.Numbers))
	for w := range l.Numbers {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for _, w := range words {
		if strings.Contains(text, w) {
			return l.Numbers[w], true
		}
	}
	return 0, false
}

// IsGreeting reports whether text is or starts with a greeting word.
func (l *Lexicon) IsGreeting(text string) bool {
	for _, g := range l.Greetings {
		if text == g || strings.HasPrefix(text, g) {
			return true
		}
	}
	return false
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon parsed from the embedded tables.
// The embedded data is validated at build time by the package tests, so a
// parse failure here is a programming error.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		data, err := dataFS.ReadFile("data/lexicon.yaml")
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded table missing: %v", err))
		}
		lex, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded table invalid: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}
