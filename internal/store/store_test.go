package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/table"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", DefaultFileName))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Seed(ctx, table.Default()))
	require.NoError(t, s.Seed(ctx, table.Default()), "seeding twice must not fail")

	c, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.DefaultGraphemes().Len(), c.Characters)
	assert.Equal(t, len(SeedWords), c.Words)
	assert.Equal(t, len(DefaultSettings), c.Settings)
}

func TestLookupCharacter(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx, table.Default()))

	e, ok, err := s.LookupCharacter(ctx, "⠩")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, braille.CharacterEntry{
		Code:        "⠩",
		Grapheme:    "ny",
		Phonetic:    "ɲ",
		Description: "Luganda digraph ny",
	}, e)

	_, ok, err = s.LookupCharacter(ctx, "⠠")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutCharacter(ctx, braille.CharacterEntry{Code: "⠠", Grapheme: "'", Description: "apostrophe"}))
	e, ok, err = s.LookupCharacter(ctx, "⠠")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "'", e.Grapheme)
	assert.Empty(t, e.Phonetic)

	all, err := s.Characters(ctx)
	require.NoError(t, err)
	assert.Len(t, all, table.DefaultGraphemes().Len()+1)
}

func TestCommonWords(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx, table.Default()))

	e, ok, err := s.LookupCommonWord(ctx, "⠁⠃⠁⠝⠞⠥")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abantu", e.Word)
	assert.Equal(t, "people", e.Meaning)

	_, ok, err = s.LookupCommonWord(ctx, "⠁")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.AddWord(ctx, braille.WordEntry{Pattern: "⠅⠁ ⠞⠕", Word: "kato", Category: "names"}))
	e, ok, err = s.LookupCommonWord(ctx, "⠅⠁⠞⠕")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kato", e.Word)

	assert.Error(t, s.AddWord(ctx, braille.WordEntry{Pattern: "abc", Word: "x"}))

	names, err := s.Words(ctx, "names")
	require.NoError(t, err)
	assert.Len(t, names, 1)

	all, err := s.Words(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(SeedWords)+1)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx, table.Default()))

	v, ok, err := s.Setting(ctx, SettingVoiceGender)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "female", v)

	require.NoError(t, s.SetSetting(ctx, SettingVoiceGender, "male"))
	v, _, err = s.Setting(ctx, SettingVoiceGender)
	require.NoError(t, err)
	assert.Equal(t, "male", v)

	require.NoError(t, s.Seed(ctx, table.Default()))
	v, _, err = s.Setting(ctx, SettingVoiceGender)
	require.NoError(t, err)
	assert.Equal(t, "male", v, "seed must not overwrite user changes")

	_, ok, err = s.Setting(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", all[SettingAudioVolume])

	assert.Error(t, s.SetSetting(ctx, "", "x"))
}

func TestStoreBacksEngine(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx, table.Default()))

	e := translate.NewEngine(table.Default(),
		translate.WithDictionary(s),
		translate.WithCharacterStore(s),
	)
	r, err := e.Translate(ctx, translate.BrailleText("⠍⠥⠅⠭⠁⠝⠕ ⠩⠁"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mukwano", "nya"}, r.Words)
	assert.Equal(t, []string{"mukwano", "ɲa"}, r.Phonetics)
}

func TestEditedTablesReachBothPaths(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx, table.Default()))

	path := filepath.Join(t.TempDir(), table.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
graphemes:
  - dots: "1"
    grapheme: aa
phonetics:
  aa: "aː"
`), 0644))
	tables, err := table.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, s.SyncCharacters(ctx, tables))

	e := translate.NewEngine(tables, translate.WithCharacterStore(s))

	tests := []struct {
		name     string
		dots     braille.DotSet
		word     string
		phonetic string
	}{
		{name: "edited cell", dots: braille.MustDotSet(1), word: "aa", phonetic: "aː"},
		{name: "default cell", dots: braille.MustDotSet(1, 4, 6), word: "ny", phonetic: "ɲ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chord := e.TranslateDots(ctx, tt.dots)
			text, err := e.Translate(ctx, translate.BrailleText(string(tt.dots.Cell())))
			require.NoError(t, err)

			assert.Equal(t, []string{tt.word}, chord.Words)
			assert.Equal(t, []string{tt.phonetic}, chord.Phonetics)
			assert.Equal(t, chord, text)
		})
	}

	stored, ok, err := s.LookupCharacter(ctx, "⠁")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aa", stored.Grapheme)
	assert.Equal(t, "aː", stored.Phonetic)

	c, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.DefaultGraphemes().Len(), c.Characters)
}
