package table

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// PhoneticTable maps graphemes and digraphs to IPA.
// Lookups are case-insensitive; unmapped input is returned unchanged.
type PhoneticTable struct {
	ipa    map[string]string
	maxLen int // longest key in runes
}

// NewPhoneticTable builds a table from a grapheme -> IPA map.
func NewPhoneticTable(m map[string]string) *PhoneticTable {
	t := &PhoneticTable{ipa: make(map[string]string, len(m))}
	for k, v := range m {
		k = fold(k)
		if k == "" {
			continue
		}
		t.ipa[k] = v
		t.maxLen = max(t.maxLen, utf8.RuneCountInString(k))
	}
	return t
}

// Lookup returns the IPA for g, or g itself when no entry exists.
func (t *PhoneticTable) Lookup(g string) string {
	if ipa, ok := t.ipa[fold(g)]; ok {
		return ipa
	}
	return g
}

// Transcribe renders a whole word, matching the longest known grapheme at
// each position. Runes with no entry pass through unchanged.
func (t *PhoneticTable) Transcribe(word string) string {
	runes := []rune(fold(word))
	var b strings.Builder
	for i := 0; i < len(runes); {
		matched := false
		for n := min(t.maxLen, len(runes)-i); n > 0; n-- {
			if ipa, ok := t.ipa[string(runes[i:i+n])]; ok {
				b.WriteString(ipa)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

// Map returns a copy of the table contents.
func (t *PhoneticTable) Map() map[string]string {
	out := make(map[string]string, len(t.ipa))
	for k, v := range t.ipa {
		out[k] = v
	}
	return out
}

// fold applies Unicode case folding. A Caser is not safe for concurrent
// use, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

var defaultPhonetics = map[string]string{
	// Vowels
	"a": "a", "e": "e", "i": "i", "o": "o", "u": "u",

	// Consonants
	"b": "b", "c": "tʃ", "d": "d", "f": "f", "g": "ɡ", "h": "h",
	"j": "dʒ", "k": "k", "l": "l", "m": "m", "n": "n", "p": "p",
	"r": "r", "s": "s", "t": "t", "v": "v", "w": "w", "y": "j", "z": "z",

	// Luganda digraphs and clusters
	"ny": "ɲ", "ng": "ŋ", "gw": "ɡʷ", "ky": "c", "ly": "ʎ", "gy": "ɟ",
	"mp": "mp", "nt": "nt", "nk": "ŋk",
	"ng'": "ŋ", "n'": "ŋ",

	"?": "?",
}

// DefaultPhonetics returns the built-in phonetic table.
func DefaultPhonetics() *PhoneticTable {
	return NewPhoneticTable(defaultPhonetics)
}
