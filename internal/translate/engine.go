// Package translate turns Braille input into Luganda words and their IPA
// rendering. Whole words are looked up in a dictionary first; anything not
// found is decoded cell by cell.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/table"
)

// Result is a translation: one output word and one phonetic rendering per
// input word, in input order.
type Result struct {
	Words     []string `json:"words"`
	Phonetics []string `json:"phonetics"`
}

// Text joins the words with single spaces.
func (r Result) Text() string {
	return strings.Join(r.Words, " ")
}

// PhoneticText joins the phonetic renderings with single spaces.
func (r Result) PhoneticText() string {
	return strings.Join(r.Phonetics, " ")
}

// Empty reports whether the result holds no words.
func (r Result) Empty() bool {
	return len(r.Words) == 0
}

// Unresolved reports whether every word consists only of unknown markers.
// An empty result is not unresolved.
func (r Result) Unresolved() bool {
	if r.Empty() {
		return false
	}
	for _, w := range r.Words {
		if strings.Trim(w, braille.Unknown) != "" {
			return false
		}
	}
	return true
}

// Engine translates Braille input. It holds no mutable state, so repeated
// calls with the same input give the same result as long as its
// collaborators do.
type Engine struct {
	graphemes *table.GraphemeTable
	phonetics *table.PhoneticTable
	dict      Dictionary
	chars     CharacterStore
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDictionary enables the whole-word short-circuit.
func WithDictionary(d Dictionary) Option {
	return func(e *Engine) {
		e.dict = d
	}
}

// WithCharacterStore consults s before the compiled grapheme table.
func WithCharacterStore(s CharacterStore) Option {
	return func(e *Engine) {
		e.chars = s
	}
}

// WithLogger sets the logger used for collaborator warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine over the given tables.
func NewEngine(t table.Tables, opts ...Option) *Engine {
	e := &Engine{
		graphemes: t.Graphemes,
		phonetics: t.Phonetics,
		logger:    slog.Default(),
	}
	if e.graphemes == nil {
		e.graphemes = table.DefaultGraphemes()
	}
	if e.phonetics == nil {
		e.phonetics = table.DefaultPhonetics()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graphemes returns the engine's compiled grapheme table.
func (e *Engine) Graphemes() *table.GraphemeTable {
	return e.graphemes
}

// Translate translates a DotSequence or BrailleText. Unknown cells become
// braille.Unknown; only an unrecognized input returns an error.
func (e *Engine) Translate(ctx context.Context, in Input) (Result, error) {
	switch v := in.(type) {
	case DotSequence:
		return e.translateDots(ctx, v), nil
	case BrailleText:
		return e.translateText(ctx, string(v)), nil
	default:
		return Result{}, fmt.Errorf("translating %T: %w", in, ErrInvalidInput)
	}
}

// TranslateDots translates one chord. It resolves the chord's cell the same
// way a Braille text cell is resolved.
func (e *Engine) TranslateDots(ctx context.Context, s braille.DotSet) Result {
	return e.translateDots(ctx, DotSequence(s.Dots()))
}

// TranslateLines translates each line of text separately. Lines that
// produce no words are skipped.
func (e *Engine) TranslateLines(ctx context.Context, text string) ([]Result, error) {
	var results []Result
	for _, line := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := e.translateText(ctx, line)
		if r.Empty() {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Engine) translateDots(ctx context.Context, dots DotSequence) Result {
	if len(dots) == 0 {
		return Result{}
	}
	s, err := braille.NewDotSet(dots...)
	if err != nil {
		return Result{
			Words:     []string{braille.Unknown},
			Phonetics: []string{e.phonetics.Lookup(braille.Unknown)},
		}
	}
	g, ipa := e.resolveCell(ctx, s.Cell())
	return Result{Words: []string{g}, Phonetics: []string{ipa}}
}

func (e *Engine) translateText(ctx context.Context, text string) Result {
	var r Result
	for _, field := range strings.Fields(text) {
		pattern := braille.Pattern(field)
		if pattern == "" {
			continue
		}
		word, phonetic := e.translateWord(ctx, pattern)
		r.Words = append(r.Words, word)
		r.Phonetics = append(r.Phonetics, phonetic)
	}
	return r
}

// translateWord resolves one cell pattern: dictionary, then per-cell decoding.
func (e *Engine) translateWord(ctx context.Context, pattern string) (string, string) {
	if entry, ok := e.lookupWord(ctx, pattern); ok {
		// A stored phonetic wins over one derived from the word.
		if entry.Phonetic != "" {
			return entry.Word, entry.Phonetic
		}
		return entry.Word, e.phonetics.Transcribe(entry.Word)
	}

	var word, phonetic strings.Builder
	for _, cell := range pattern {
		g, ipa := e.resolveCell(ctx, cell)
		word.WriteString(g)
		phonetic.WriteString(ipa)
	}
	return word.String(), phonetic.String()
}

func (e *Engine) lookupWord(ctx context.Context, pattern string) (braille.WordEntry, bool) {
	if e.dict == nil {
		return braille.WordEntry{}, false
	}
	entry, ok, err := e.dict.LookupCommonWord(ctx, pattern)
	if err != nil {
		e.logger.Warn("dictionary lookup failed", "pattern", pattern, "error", err)
	}
	if !ok || entry.Word == "" {
		return braille.WordEntry{}, false
	}
	return entry, true
}

// resolveCell returns the grapheme and phonetic for one cell: character
// store, then compiled table, then the unknown marker.
func (e *Engine) resolveCell(ctx context.Context, cell rune) (string, string) {
	g, ipa, _ := e.describeCell(ctx, cell)
	return g, ipa
}

// describeCell is resolveCell plus a description of the grapheme.
func (e *Engine) describeCell(ctx context.Context, cell rune) (grapheme, phonetic, description string) {
	if entry, ok := e.lookupCharacter(ctx, cell); ok {
		grapheme, phonetic, description = entry.Grapheme, entry.Phonetic, entry.Description
	} else if g, ok := e.graphemes.LookupCell(cell); ok {
		grapheme = g
	} else {
		grapheme = braille.Unknown
	}
	if phonetic == "" {
		phonetic = e.phonetics.Lookup(grapheme)
	}
	if description == "" {
		description = table.Describe(grapheme)
	}
	return grapheme, phonetic, description
}

func (e *Engine) lookupCharacter(ctx context.Context, cell rune) (braille.CharacterEntry, bool) {
	if e.chars == nil {
		return braille.CharacterEntry{}, false
	}
	entry, ok, err := e.chars.LookupCharacter(ctx, string(cell))
	if err != nil {
		e.logger.Warn("character lookup failed", "cell", string(cell), "error", err)
		return braille.CharacterEntry{}, false
	}
	if !ok || entry.Grapheme == "" {
		return braille.CharacterEntry{}, false
	}
	return entry, true
}
