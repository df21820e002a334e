package table

import (
	"fmt"
	"os"
	"sort"

	"github.com/f3rmion/braille/internal/braille"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the tables file written by `braille init`.
const DefaultFileName = "tables.yaml"

// Tables bundles the grapheme and phonetic tables.
type Tables struct {
	Graphemes *GraphemeTable
	Phonetics *PhoneticTable
}

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Graphemes: DefaultGraphemes(),
		Phonetics: DefaultPhonetics(),
	}
}

// fileEntry is one grapheme mapping as written in tables.yaml.
type fileEntry struct {
	Dots     string `yaml:"dots"`     // e.g. "1-4-6"
	Grapheme string `yaml:"grapheme"` // e.g. "ny"
	Cell     string `yaml:"cell,omitempty"`
}

// tablesFile is the on-disk layout of tables.yaml.
type tablesFile struct {
	Graphemes []fileEntry       `yaml:"graphemes"`
	Phonetics map[string]string `yaml:"phonetics"`
}

// LoadFile reads a tables file. Entries in the file are layered over the
// built-in tables, so a file only needs the mappings it changes.
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables: %w", err)
	}
	return Parse(data)
}

// Parse decodes tables.yaml content layered over the defaults.
func Parse(data []byte) (Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Tables{}, fmt.Errorf("parsing tables: %w", err)
	}

	entries := append([]Entry(nil), defaultGraphemes...)
	for i, fe := range f.Graphemes {
		s, err := braille.ParseDotSet(fe.Dots)
		if err != nil {
			return Tables{}, fmt.Errorf("grapheme entry %d: %w", i+1, err)
		}
		if s.IsEmpty() || fe.Grapheme == "" {
			return Tables{}, fmt.Errorf("grapheme entry %d: dots and grapheme are required", i+1)
		}
		entries = append(entries, Entry{Dots: s, Grapheme: fe.Grapheme})
	}

	phonetics := make(map[string]string, len(defaultPhonetics)+len(f.Phonetics))
	for k, v := range defaultPhonetics {
		phonetics[k] = v
	}
	for k, v := range f.Phonetics {
		phonetics[k] = v
	}

	return Tables{
		Graphemes: NewGraphemeTable(entries),
		Phonetics: NewPhoneticTable(phonetics),
	}, nil
}

// Template renders the built-in tables as a tables.yaml document.
func Template() ([]byte, error) {
	return Marshal(Default())
}

// Marshal renders t in the tables.yaml layout.
func Marshal(t Tables) ([]byte, error) {
	var f tablesFile
	for _, e := range t.Graphemes.Entries() {
		f.Graphemes = append(f.Graphemes, fileEntry{
			Dots:     e.Dots.String(),
			Grapheme: e.Grapheme,
			Cell:     string(e.Dots.Cell()),
		})
	}
	sort.SliceStable(f.Graphemes, func(i, j int) bool {
		return f.Graphemes[i].Grapheme < f.Graphemes[j].Grapheme
	})
	f.Phonetics = t.Phonetics.Map()

	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encoding tables: %w", err)
	}
	return out, nil
}

// SaveFile writes t to path.
func SaveFile(path string, t Tables) error {
	out, err := Marshal(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing tables: %w", err)
	}
	return nil
}
