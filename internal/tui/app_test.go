package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/table"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/f3rmion/braille/internal/tui/views"
)

func newTestApp(t *testing.T) (AppModel, *chord.Aggregator) {
	t.Helper()
	agg := chord.New()
	t.Cleanup(agg.Close)
	app := NewApp(Deps{
		Engine:     translate.NewEngine(table.Default()),
		Aggregator: agg,
		Lang:       "lg",
	})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(AppModel), agg
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppSwitchViews(t *testing.T) {
	m, _ := newTestApp(t)
	assert.Equal(t, ViewChord, m.currentView)

	next, _ := m.Update(key("3"))
	m = next.(AppModel)
	assert.Equal(t, ViewSettings, m.currentView)
	assert.Equal(t, 2, m.selectedMenu)

	next, _ = m.Update(key("2"))
	m = next.(AppModel)
	assert.Equal(t, ViewTranslate, m.currentView)

	// Digits are typed into the translate input rather than switching views.
	next, _ = m.Update(key("1"))
	m = next.(AppModel)
	assert.Equal(t, ViewTranslate, m.currentView)
}

func TestAppChordKeysReachAggregator(t *testing.T) {
	m, agg := newTestApp(t)

	next, _ := m.Update(key("f"))
	m = next.(AppModel)
	next, _ = m.Update(key("k"))
	_ = next.(AppModel)
	assert.Equal(t, braille.MustDotSet(1, 5), agg.Current())
}

func TestAppRoutesTranslations(t *testing.T) {
	m, _ := newTestApp(t)
	next, _ := m.Update(key("2"))
	m = next.(AppModel)

	next, _ = m.Update(views.TranslationMsg{Translation: translate.Translation{
		Dots:   braille.MustDotSet(1, 4, 6),
		Result: translate.Result{Words: []string{"ny"}, Phonetics: []string{"ɲ"}},
	}})
	m = next.(AppModel)

	next, _ = m.Update(key("?"))
	m = next.(AppModel)
	assert.False(t, m.showHelp, "help is typed into the translate input")

	m.currentView = ViewChord
	assert.Contains(t, m.View(), "ɲ")
}

func TestAppHelpAndQuit(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(key("?"))
	m = next.(AppModel)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Toggle dots")

	next, _ = m.Update(key("x"))
	m = next.(AppModel)
	assert.False(t, m.showHelp)

	_, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
