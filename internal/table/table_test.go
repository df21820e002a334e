package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphemeLookup(t *testing.T) {
	g := DefaultGraphemes()

	tests := []struct {
		name string
		dots []int
		want string
	}{
		{name: "a", dots: []int{1}, want: "a"},
		{name: "b", dots: []int{1, 2}, want: "b"},
		{name: "z", dots: []int{1, 3, 5, 6}, want: "z"},
		{name: "ny", dots: []int{1, 4, 6}, want: "ny"},
		{name: "ny unordered", dots: []int{6, 4, 1}, want: "ny"},
		{name: "ng", dots: []int{1, 2, 4, 6}, want: "ng"},
		{name: "gw", dots: []int{1, 5, 6}, want: "gw"},
		{name: "ky", dots: []int{2, 4, 6}, want: "ky"},
		{name: "ly", dots: []int{1, 2, 5, 6}, want: "ly"},
		{name: "duplicates", dots: []int{2, 2, 1}, want: "b"},
		{name: "unmapped", dots: []int{6}, want: "?"},
		{name: "empty", dots: nil, want: "?"},
		{name: "out of range", dots: []int{1, 7}, want: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Lookup(tt.dots...))
		})
	}
}

func TestGraphemeTableTotal(t *testing.T) {
	g := DefaultGraphemes()
	for b := 0; b < 64; b++ {
		got := g.Lookup(braille.FromBits(uint8(b)).Dots()...)
		assert.NotEmpty(t, got)
	}
}

func TestDotsFor(t *testing.T) {
	g := DefaultGraphemes()

	s, ok := g.DotsFor("ny")
	require.True(t, ok)
	assert.Equal(t, "1-4-6", s.String())

	_, ok = g.DotsFor("ŋ")
	assert.False(t, ok)
	assert.Equal(t, 31, g.Len())
}

func TestPhoneticLookup(t *testing.T) {
	p := DefaultPhonetics()

	tests := []struct {
		in   string
		want string
	}{
		{in: "a", want: "a"},
		{in: "c", want: "tʃ"},
		{in: "ny", want: "ɲ"},
		{in: "NY", want: "ɲ"},
		{in: "Ng", want: "ŋ"},
		{in: "ng'", want: "ŋ"},
		{in: "gw", want: "ɡʷ"},
		{in: "?", want: "?"},
		{in: "x", want: "x"},
		{in: "qq", want: "qq"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Lookup(tt.in))
		})
	}
}

func TestTranscribe(t *testing.T) {
	p := DefaultPhonetics()

	assert.Equal(t, "ɲamʎa", p.Transcribe("nyamlya"))
	assert.Equal(t, "mukwano", p.Transcribe("Mukwano"))
	assert.Equal(t, "ŋaŋa", p.Transcribe("ng'anga"))
	assert.Equal(t, "tʃx?", p.Transcribe("cx?"))
	assert.Equal(t, "", p.Transcribe(""))
}

func TestParseLayersOverDefaults(t *testing.T) {
	data := []byte(`
graphemes:
  - dots: "6"
    grapheme: "'"
  - dots: "1-2"
    grapheme: bb
phonetics:
  bb: bː
`)
	tables, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "'", tables.Graphemes.Lookup(6))
	assert.Equal(t, "bb", tables.Graphemes.Lookup(1, 2))
	assert.Equal(t, "a", tables.Graphemes.Lookup(1))
	assert.Equal(t, "bː", tables.Phonetics.Lookup("bb"))
	assert.Equal(t, "ɲ", tables.Phonetics.Lookup("ny"))
}

func TestParseRejectsBadDots(t *testing.T) {
	_, err := Parse([]byte("graphemes:\n  - dots: \"19\"\n    grapheme: x\n"))
	assert.ErrorIs(t, err, braille.ErrInvalidDot)

	_, err = Parse([]byte("graphemes:\n  - dots: \"1\"\n"))
	assert.Error(t, err)
}

func TestTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, SaveFile(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grapheme: ny")

	tables, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultGraphemes().Entries(), tables.Graphemes.Entries())
	assert.Equal(t, DefaultPhonetics().Map(), tables.Phonetics.Map())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Luganda vowel a", Describe("a"))
	assert.Equal(t, "Luganda consonant b", Describe("b"))
	assert.Equal(t, "Luganda digraph ny", Describe("ny"))
	assert.Equal(t, "Unknown character", Describe("?"))
}

func TestEncode(t *testing.T) {
	g := DefaultGraphemes()
	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{"digraph first", "Nyama mu", "⠩⠁⠍⠁ ⠍⠥", nil},
		{"plain letters", "mukwano", "⠍⠥⠅⠺⠁⠝⠕", nil},
		{"ng digraph", "nga", "⠫⠁", nil},
		{"missing runes", "añ", "⠁", []string{"ñ"}},
		{"blank", "  ", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := g.Encode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
