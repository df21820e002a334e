// Package dict loads whole-word Braille dictionaries from JSON Lines files.
//
// Each line is one word:
//
//	{"pattern":"⠁⠃⠁⠝⠞⠥","word":"abantu","meaning":"people","category":"nouns"}
//
// A word may give its cells as dot-sets instead of a pattern:
//
//	{"dots":["1","1-2","1","1-3-4-5","2-3-4-5","1-3-6"],"word":"abantu"}
package dict

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/f3rmion/braille/internal/braille"
)

// DefaultFileName is the word list read from the config dir.
const DefaultFileName = "words.jsonl"

// Line is one JSONL record.
type Line struct {
	Pattern  string   `json:"pattern,omitempty"`
	Dots     []string `json:"dots,omitempty"`
	Word     string   `json:"word"`
	Phonetic string   `json:"phonetic,omitempty"`
	Meaning  string   `json:"meaning,omitempty"`
	Category string   `json:"category,omitempty"`
}

// Entry converts the line to a word entry, resolving Dots when no
// pattern is given.
func (l Line) Entry() (braille.WordEntry, error) {
	pattern := braille.Pattern(l.Pattern)
	if pattern == "" && len(l.Dots) > 0 {
		var b strings.Builder
		for _, d := range l.Dots {
			s, err := braille.ParseDotSet(d)
			if err != nil {
				return braille.WordEntry{}, err
			}
			b.WriteRune(s.Cell())
		}
		pattern = b.String()
	}
	if pattern == "" || l.Word == "" {
		return braille.WordEntry{}, fmt.Errorf("word list line needs a pattern and a word")
	}
	return braille.WordEntry{
		Pattern:  pattern,
		Word:     l.Word,
		Phonetic: l.Phonetic,
		Meaning:  l.Meaning,
		Category: l.Category,
	}, nil
}

// WordList is an in-memory dictionary keyed by cell pattern.
// It implements translate.Dictionary and is safe for concurrent use.
type WordList struct {
	mu      sync.RWMutex
	entries map[string]braille.WordEntry
	skipped int
}

// NewWordList creates an empty word list.
func NewWordList() *WordList {
	return &WordList{
		entries: make(map[string]braille.WordEntry),
	}
}

// LoadFromFile reads a JSONL word list into w. Malformed lines are skipped
// and counted; see Skipped.
func (w *WordList) LoadFromFile(path string) error {
	entries, skipped, err := readFile(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for k, e := range entries {
		w.entries[k] = e
	}
	w.skipped += skipped
	return nil
}

// Reload replaces the contents of w with the words in path. On error w is
// left unchanged.
func (w *WordList) Reload(path string) error {
	entries, skipped, err := readFile(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = entries
	w.skipped = skipped
	return nil
}

func readFile(path string) (map[string]braille.WordEntry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening word list: %w", err)
	}
	defer file.Close()

	entries := make(map[string]braille.WordEntry)
	skipped := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var l Line
		if err := json.Unmarshal([]byte(line), &l); err != nil {
			skipped++
			continue
		}
		e, err := l.Entry()
		if err != nil {
			skipped++
			continue
		}
		entries[e.Pattern] = e
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading word list: %w", err)
	}
	return entries, skipped, nil
}

// Add inserts or replaces a word.
func (w *WordList) Add(e braille.WordEntry) {
	e.Pattern = braille.Pattern(e.Pattern)
	if e.Pattern == "" || e.Word == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[e.Pattern] = e
}

// Lookup returns the word for an exact cell pattern.
func (w *WordList) Lookup(pattern string) (braille.WordEntry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[pattern]
	return e, ok
}

// LookupCommonWord implements translate.Dictionary. It never fails.
func (w *WordList) LookupCommonWord(_ context.Context, pattern string) (braille.WordEntry, bool, error) {
	e, ok := w.Lookup(pattern)
	return e, ok, nil
}

// Size returns the number of words.
func (w *WordList) Size() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// Skipped returns the number of malformed lines seen while loading.
func (w *WordList) Skipped() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.skipped
}

// Entries returns all words sorted by word.
func (w *WordList) Entries() []braille.WordEntry {
	w.mu.RLock()
	out := make([]braille.WordEntry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Word < out[j].Word
	})
	return out
}

// SaveToFile writes the list as JSONL, one word per line.
func (w *WordList) SaveToFile(path string) error {
	var b strings.Builder
	for _, e := range w.Entries() {
		line, err := json.Marshal(Line{
			Pattern:  e.Pattern,
			Word:     e.Word,
			Phonetic: e.Phonetic,
			Meaning:  e.Meaning,
			Category: e.Category,
		})
		if err != nil {
			return fmt.Errorf("encoding %q: %w", e.Word, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing word list: %w", err)
	}
	return nil
}
