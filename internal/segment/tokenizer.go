// Package segment splits an output word into the longest pre-recorded audio
// segments available in a library.
package segment

import (
	"strings"
	"unicode/utf8"
)

// Library reports whether an audio segment exists.
type Library interface {
	Exists(segment string) bool
}

// LibraryFunc adapts a function to Library.
type LibraryFunc func(segment string) bool

// Exists calls f(segment).
func (f LibraryFunc) Exists(segment string) bool {
	return f(segment)
}

// Combination is a letter group that should be played as specific parts.
type Combination struct {
	Text  string
	Parts []string
}

// DefaultCombinations are the Luganda nasal clusters, in priority order.
var DefaultCombinations = []Combination{
	{Text: "ny", Parts: []string{"n", "y"}},
	{Text: "nny", Parts: []string{"n", "ny"}},
	{Text: "nng", Parts: []string{"n", "ng"}},
}

// maxGreedy is the longest segment tried by the greedy scan, in runes.
const maxGreedy = 3

// Tokenizer splits words into playable segments.
type Tokenizer struct {
	lib          Library
	combinations []Combination
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithCombinations replaces the special combinations.
func WithCombinations(c []Combination) Option {
	return func(t *Tokenizer) {
		t.combinations = c
	}
}

// New returns a Tokenizer backed by lib.
func New(lib Library, opts ...Option) *Tokenizer {
	t := &Tokenizer{lib: lib, combinations: DefaultCombinations}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the segments to play for word. Positions that no segment
// covers are skipped, so the result may be shorter than the word or empty.
func (t *Tokenizer) Tokenize(word string) []string {
	text := strings.ToLower(strings.TrimSpace(word))
	if text == "" {
		return nil
	}

	for _, c := range t.combinations {
		text = strings.ReplaceAll(text, c.Text, strings.Join(c.Parts, ""))
	}

	segs, _ := t.tokenize(text)
	return segs
}

// tokenize reports whether text was covered by at least one segment. Empty
// text is trivially covered.
func (t *Tokenizer) tokenize(text string) ([]string, bool) {
	if text == "" {
		return nil, true
	}
	if t.lib.Exists(text) {
		return []string{text}, true
	}

	for _, c := range t.combinations {
		i := strings.Index(text, c.Text)
		if i < 0 {
			continue
		}
		before, ok := t.tokenize(text[:i])
		if !ok {
			continue
		}
		after, ok := t.tokenize(text[i+len(c.Text):])
		if !ok {
			continue
		}
		segs := make([]string, 0, len(before)+len(c.Parts)+len(after))
		segs = append(segs, before...)
		segs = append(segs, c.Parts...)
		segs = append(segs, after...)
		return segs, true
	}

	segs := t.greedy(text)
	return segs, len(segs) > 0
}

// greedy scans left to right taking the longest existing segment of up to
// maxGreedy runes at each position.
func (t *Tokenizer) greedy(text string) []string {
	var segs []string
	for i := 0; i < len(text); {
		matched := false
		for n := maxGreedy; n > 0; n-- {
			end, ok := advance(text, i, n)
			if !ok {
				continue
			}
			if seg := text[i:end]; t.lib.Exists(seg) {
				segs = append(segs, seg)
				i = end
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	return segs
}

// advance returns the byte offset n runes after i, or false when fewer than
// n runes remain.
func advance(s string, i, n int) (int, bool) {
	for ; n > 0; n-- {
		if i >= len(s) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i, true
}
