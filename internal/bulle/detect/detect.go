// Package detect contains the pure matching functions the turn processor
// runs over a normalized (lowercased, trimmed) message. Detectors never
// mutate state and never fail: a miss is a nil or zero return.
package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kiwi570/bulle/internal/bulle/lexicon"
)

// Last is the sentinel index returned for "dernier"/"dernière", meaning the
// last item of a collection.
const Last = -1

var (
	hexRe    = regexp.MustCompile(`#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`)
	numberRe = regexp.MustCompile(`\d+`)
)

// Color returns the color mentioned in msg: a hex literal first (3- or
// 6-digit), then the lexicon's named colors, longest name first.
func Color(lex *lexicon.Lexicon, msg string) *lexicon.Color {
	if m := hexRe.FindString(msg); m != "" {
		return &lexicon.Color{Name: m, Hex: strings.ToUpper(m)}
	}
	return lex.FindColor(msg)
}

// Layout returns the layout variant triggered by msg among the section type's
// configured variants, first variant whose keyword list matches.
func Layout(cfg *lexicon.SectionConfig, msg string) *lexicon.LayoutVariant {
	if cfg == nil {
		return nil
	}
	for i := range cfg.Layouts {
		for _, k := range cfg.Layouts[i].Keywords {
			if strings.Contains(msg, k) {
				v := cfg.Layouts[i]
				return &v
			}
		}
	}
	return nil
}

// Icon returns the icon-catalog entry triggered by msg, or nil.
func Icon(lex *lexicon.Lexicon, msg string) *lexicon.Icon {
	return lex.FindIcon(msg)
}

// Number extracts an item count or ordinal from msg: the first decimal
// integer, else a French number word ("dernier" yields Last). The second
// return is false when msg carries no number at all.
func Number(lex *lexicon.Lexicon, msg string) (int, bool) {
	if m := numberRe.FindString(msg); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n, true
		}
	}
	return lex.FindNumberWord(msg)
}

// Element resolves which named content element msg refers to, returning the
// canonical element key ("title", "subtitle", "badge", "ctaPrimary") or "".
//
// Title keywords only count when no "sous" marker is present, so "sous-titre"
// never resolves to "title".
func Element(lex *lexicon.Lexicon, msg string) string {
	switch {
	case lex.Matches(msg, lexicon.CategoryTitle) && !strings.Contains(msg, "sous"):
		return "title"
	case lex.Matches(msg, lexicon.CategorySubtitle),
		strings.Contains(msg, "sous-titre"),
		strings.Contains(msg, "sous titre"):
		return "subtitle"
	case lex.Matches(msg, lexicon.CategoryBadge):
		return "badge"
	case lex.Matches(msg, lexicon.CategoryButton):
		return "ctaPrimary"
	}
	return ""
}
