package views

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/table"
	"github.com/f3rmion/braille/internal/translate"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    translate.BrailleText
		wantErr bool
	}{
		{"braille passes through", " ⠍⠥⠅ ", "⠍⠥⠅", false},
		{"dot notation", "134 136 13 / 1", "⠍⠥⠅ ⠁", false},
		{"letters", "nyama", "⠩⠁⠍⠁", false},
		{"unknown letter", "ñ", "", true},
		{"blank", "  ", "", false},
		{"bad dots", "19", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.in, table.DefaultGraphemes())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "space", KeyName(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.Equal(t, "backspace", KeyName(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, "f", KeyName(runes("f")))
}

func TestChordModelSubmit(t *testing.T) {
	agg := chord.New()
	defer agg.Close()
	m := NewChordModel(agg)

	for _, k := range []string{"f", "j", "l", "j"} {
		m, _ = m.Update(runes(k))
	}
	assert.Equal(t, braille.MustDotSet(1, 6), agg.Current())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.NotNil(t, cmd)
	assert.Equal(t, "sent 1-6", m.status)
	assert.Equal(t, braille.MustDotSet(1, 6), <-agg.Submissions())
	assert.True(t, agg.Current().IsEmpty())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "no dots selected", m.status)
}

func TestChordModelClear(t *testing.T) {
	agg := chord.New()
	defer agg.Close()
	m := NewChordModel(agg)

	m, _ = m.Update(runes("s"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, agg.Current().IsEmpty())
	assert.Equal(t, "cleared", m.status)
}

func TestChordModelHistory(t *testing.T) {
	agg := chord.New()
	defer agg.Close()
	m := NewChordModel(agg)

	for i := 0; i < historySize+3; i++ {
		m, _ = m.Update(TranslationMsg{translate.Translation{
			Dots:   braille.MustDotSet(1),
			Result: translate.Result{Words: []string{"a"}, Phonetics: []string{"a"}},
		}})
	}
	assert.Len(t, m.history, historySize)
	assert.Contains(t, m.View(), "Luganda")
}

// collect runs cmd and returns its messages, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// apply feeds every message produced by cmd back into m, skipping spinner
// ticks.
func apply(m TranslateModel, cmd tea.Cmd) TranslateModel {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestTranslateModel(t *testing.T) {
	engine := translate.NewEngine(table.Default())
	m := NewTranslateModel(engine, nil, "lg")
	m.input.SetValue("⠝⠽ ⠁")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Translating")

	m = apply(m, cmd)
	assert.False(t, m.busy)
	require.NoError(t, m.err)
	assert.Equal(t, []string{"ny", "a"}, m.result.Words)
	require.Len(t, m.details, 2)
	assert.False(t, m.details[0].Found)
	assert.Contains(t, m.View(), "by character")
}

func TestTranslateModelBadInput(t *testing.T) {
	m := NewTranslateModel(translate.NewEngine(table.Default()), nil, "lg")
	m.input.SetValue("1 9")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.err)
}

type fakeSpeaker struct {
	text, lang string
}

func (f *fakeSpeaker) Speak(_ context.Context, text, lang string) error {
	f.text, f.lang = text, lang
	return nil
}

func TestTranslateModelSpeak(t *testing.T) {
	sp := &fakeSpeaker{}
	m := NewTranslateModel(translate.NewEngine(table.Default()), sp, "lg")
	m.result = translate.Result{Words: []string{"ny"}, Phonetics: []string{"ɲ"}}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	require.NotNil(t, cmd)
	assert.True(t, m.speaking)

	m = apply(m, cmd)
	assert.False(t, m.speaking)
	assert.Equal(t, "ny", sp.text)
	assert.Equal(t, "lg", sp.lang)
	assert.NoError(t, m.err)
}

type memSettings struct {
	values map[string]string
	fail   bool
}

func (s *memSettings) Settings(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *memSettings) SetSetting(_ context.Context, name, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	s.values[name] = value
	return nil
}

func TestSettingsModelCycle(t *testing.T) {
	st := &memSettings{values: map[string]string{"audio_volume": "100", "speech_speed": "normal"}}
	m := NewSettingsModel(st, []Field{{Label: "Language", Value: "lg"}})

	m, _ = m.Update(m.Init()())
	assert.Equal(t, []string{"audio_volume", "speech_speed", "voice_gender"}, m.names)

	// audio_volume wraps from 100 to 25.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	assert.Equal(t, "25", st.values["audio_volume"])
	assert.Equal(t, "25", m.values["audio_volume"])

	// voice_gender is unset; stepping back picks the last choice.
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	m, cmd = m.Update(runes("h"))
	m, _ = m.Update(cmd())
	assert.Equal(t, "male", st.values["voice_gender"])
	assert.Contains(t, m.View(), "Language")
}

func TestSettingsModelSaveError(t *testing.T) {
	st := &memSettings{values: map[string]string{"speech_speed": "normal"}, fail: true}
	m := NewSettingsModel(st, nil)
	m, _ = m.Update(m.Init()())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	assert.EqualError(t, m.err, "disk full")
}

func TestSettingsModelWithoutStore(t *testing.T) {
	m := NewSettingsModel(nil, nil)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No database open")
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "ɲa ŋa\nɡʷa", wordWrap("ɲa ŋa ɡʷa", 6))
	assert.Equal(t, "", wordWrap("", 10))
}
