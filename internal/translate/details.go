package translate

import (
	"context"
	"fmt"

	"github.com/f3rmion/braille/internal/braille"
)

// WordDetails describes one Braille word: either the dictionary entry it
// matched or a cell-by-cell breakdown.
type WordDetails struct {
	Pattern    string            `json:"pattern"`
	Found      bool              `json:"found"` // true for a dictionary hit
	Word       string            `json:"word"`
	Phonetic   string            `json:"phonetic"`
	Meaning    string            `json:"meaning,omitempty"`
	Category   string            `json:"category,omitempty"`
	Characters []CharacterDetail `json:"characters,omitempty"`
}

// CharacterDetail is one cell of a breakdown.
type CharacterDetail struct {
	Code        string `json:"braille_code"`
	Dots        string `json:"dots"`
	Grapheme    string `json:"luganda_char"`
	Phonetic    string `json:"ipa"`
	Description string `json:"description"`
}

// Details analyzes a single Braille word. Non-cell runes are ignored; a
// pattern with no cells is an ErrInvalidInput.
func (e *Engine) Details(ctx context.Context, word string) (WordDetails, error) {
	pattern := braille.Pattern(word)
	if pattern == "" {
		return WordDetails{}, fmt.Errorf("analyzing %q: no braille cells: %w", word, ErrInvalidInput)
	}

	d := WordDetails{Pattern: pattern}
	if entry, ok := e.lookupWord(ctx, pattern); ok {
		d.Found = true
		d.Word = entry.Word
		d.Meaning = entry.Meaning
		d.Category = entry.Category
		d.Phonetic = entry.Phonetic
		if d.Phonetic == "" {
			d.Phonetic = e.phonetics.Transcribe(entry.Word)
		}
		return d, nil
	}

	var w, p string
	for _, cell := range pattern {
		c := CharacterDetail{
			Code: string(cell),
			Dots: braille.DecodeCell(cell).String(),
		}
		c.Grapheme, c.Phonetic, c.Description = e.describeCell(ctx, cell)
		d.Characters = append(d.Characters, c)
		w += c.Grapheme
		p += c.Phonetic
	}
	d.Word = w
	d.Phonetic = p
	return d, nil
}
