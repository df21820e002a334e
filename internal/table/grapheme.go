// Package table holds the static Braille-to-Luganda grapheme table and the
// grapheme-to-IPA phonetic table.
package table

import (
	"maps"
	"slices"
	"strings"

	"github.com/f3rmion/braille/internal/braille"
)

// Entry maps one dot-set to a grapheme.
type Entry struct {
	Dots     braille.DotSet
	Grapheme string
}

// GraphemeTable maps canonical dot-sets to Luganda graphemes.
// It is immutable after construction and safe for concurrent use.
type GraphemeTable struct {
	byDots map[braille.DotSet]string
	byText map[string]braille.DotSet
	maxLen int // longest grapheme in runes
}

// NewGraphemeTable builds a table from entries. Later entries for the same
// dot-set win. Empty graphemes are skipped.
func NewGraphemeTable(entries []Entry) *GraphemeTable {
	t := &GraphemeTable{
		byDots: make(map[braille.DotSet]string, len(entries)),
		byText: make(map[string]braille.DotSet, len(entries)),
	}
	for _, e := range entries {
		if e.Grapheme == "" || e.Dots.IsEmpty() {
			continue
		}
		t.byDots[e.Dots] = e.Grapheme
		t.maxLen = max(t.maxLen, len([]rune(e.Grapheme)))
	}
	// Reverse index: lowest bit pattern wins when two cells share a grapheme.
	for _, s := range slices.Sorted(maps.Keys(t.byDots)) {
		g := t.byDots[s]
		if _, ok := t.byText[g]; !ok {
			t.byText[g] = s
		}
	}
	return t
}

// Lookup returns the grapheme for the given dots in any order.
// Out-of-range dots and unmapped sets yield braille.Unknown.
func (t *GraphemeTable) Lookup(dots ...int) string {
	s, err := braille.NewDotSet(dots...)
	if err != nil {
		return braille.Unknown
	}
	if g, ok := t.LookupSet(s); ok {
		return g
	}
	return braille.Unknown
}

// LookupSet returns the grapheme for s.
func (t *GraphemeTable) LookupSet(s braille.DotSet) (string, bool) {
	g, ok := t.byDots[s]
	return g, ok
}

// LookupCell decodes cell and looks it up.
func (t *GraphemeTable) LookupCell(cell rune) (string, bool) {
	return t.LookupSet(braille.DecodeCell(cell))
}

// DotsFor returns the dot-set that produces grapheme g.
func (t *GraphemeTable) DotsFor(g string) (braille.DotSet, bool) {
	s, ok := t.byText[g]
	return s, ok
}

// Encode spells text in Braille, longest grapheme first, so "nyama"
// becomes the ny cell followed by a, m, a. Words stay separated by single
// spaces. Runes with no cell are left out and returned in missing.
func (t *GraphemeTable) Encode(text string) (cells string, missing []string) {
	var b strings.Builder
	for i, word := range strings.Fields(strings.ToLower(text)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		rs := []rune(word)
		for j := 0; j < len(rs); {
			n := min(t.maxLen, len(rs)-j)
			for ; n > 0; n-- {
				if s, ok := t.byText[string(rs[j:j+n])]; ok {
					b.WriteRune(s.Cell())
					break
				}
			}
			if n == 0 {
				missing = append(missing, string(rs[j]))
				n = 1
			}
			j += n
		}
	}
	return b.String(), missing
}

// Len returns the number of mapped dot-sets.
func (t *GraphemeTable) Len() int {
	return len(t.byDots)
}

// Entries returns all mappings ordered by bit pattern.
func (t *GraphemeTable) Entries() []Entry {
	keys := slices.Sorted(maps.Keys(t.byDots))
	entries := make([]Entry, len(keys))
	for i, s := range keys {
		entries[i] = Entry{Dots: s, Grapheme: t.byDots[s]}
	}
	return entries
}

// IsDigraph reports whether g is one of the table's multi-letter graphemes.
func IsDigraph(g string) bool {
	return len([]rune(g)) > 1
}

// defaultGraphemes is the English letter set plus the Luganda digraphs.
var defaultGraphemes = []Entry{
	{braille.MustDotSet(1), "a"},
	{braille.MustDotSet(1, 2), "b"},
	{braille.MustDotSet(1, 4), "c"},
	{braille.MustDotSet(1, 4, 5), "d"},
	{braille.MustDotSet(1, 5), "e"},
	{braille.MustDotSet(1, 2, 4), "f"},
	{braille.MustDotSet(1, 2, 4, 5), "g"},
	{braille.MustDotSet(1, 2, 5), "h"},
	{braille.MustDotSet(2, 4), "i"},
	{braille.MustDotSet(2, 4, 5), "j"},
	{braille.MustDotSet(1, 3), "k"},
	{braille.MustDotSet(1, 2, 3), "l"},
	{braille.MustDotSet(1, 3, 4), "m"},
	{braille.MustDotSet(1, 3, 4, 5), "n"},
	{braille.MustDotSet(1, 3, 5), "o"},
	{braille.MustDotSet(1, 2, 3, 4), "p"},
	{braille.MustDotSet(1, 2, 3, 4, 5), "q"},
	{braille.MustDotSet(1, 2, 3, 5), "r"},
	{braille.MustDotSet(2, 3, 4), "s"},
	{braille.MustDotSet(2, 3, 4, 5), "t"},
	{braille.MustDotSet(1, 3, 6), "u"},
	{braille.MustDotSet(1, 2, 3, 6), "v"},
	{braille.MustDotSet(2, 4, 5, 6), "w"},
	{braille.MustDotSet(1, 3, 4, 6), "x"},
	{braille.MustDotSet(1, 3, 4, 5, 6), "y"},
	{braille.MustDotSet(1, 3, 5, 6), "z"},

	// Luganda digraphs
	{braille.MustDotSet(1, 4, 6), "ny"},
	{braille.MustDotSet(1, 2, 4, 6), "ng"},
	{braille.MustDotSet(1, 5, 6), "gw"},
	{braille.MustDotSet(2, 4, 6), "ky"},
	{braille.MustDotSet(1, 2, 5, 6), "ly"},
}

// DefaultGraphemes returns the built-in grapheme table.
func DefaultGraphemes() *GraphemeTable {
	return NewGraphemeTable(defaultGraphemes)
}

// Describe returns a short human description of a grapheme, e.g.
// "Luganda vowel a" or "Luganda digraph ny".
func Describe(g string) string {
	switch {
	case g == "" || g == braille.Unknown:
		return "Unknown character"
	case IsDigraph(g):
		return "Luganda digraph " + g
	case strings.ContainsAny(g, "aeiou"):
		return "Luganda vowel " + g
	default:
		return "Luganda consonant " + g
	}
}
