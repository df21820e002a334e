package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/f3rmion/braille/internal/tui/cellart"
)

// historySize is how many translations the chord view keeps.
const historySize = 8

// TranslationMsg carries a translation from the processing loop.
type TranslationMsg struct {
	translate.Translation
}

// ChordModel is the chord pad. Terminals report no key releases, so dot
// keys toggle dots instead of holding them.
type ChordModel struct {
	agg     *chord.Aggregator
	keys    chord.KeyMap
	history []translate.Translation
	status  string
	err     error

	width  int
	height int
}

// NewChordModel creates a chord pad feeding agg.
func NewChordModel(agg *chord.Aggregator) ChordModel {
	return ChordModel{
		agg:  agg,
		keys: agg.KeyMap(),
	}
}

// SetSize updates the view dimensions.
func (m *ChordModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// KeyName normalizes a key message to the names used in key maps.
func KeyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}

// Update handles messages.
func (m ChordModel) Update(msg tea.Msg) (ChordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := KeyName(msg)
		if d, ok := m.keys.Dot(key); ok {
			m.agg.Toggle(d)
			m.err = nil
			return m, nil
		}
		switch key {
		case m.keys.Submit:
			return m.submit()
		case m.keys.Clear:
			m.agg.Clear()
			m.status = "cleared"
			return m, clearStatusAfter(time.Second)
		}

	case TranslationMsg:
		m.history = append([]translate.Translation{msg.Translation}, m.history...)
		if len(m.history) > historySize {
			m.history = m.history[:historySize]
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m ChordModel) submit() (ChordModel, tea.Cmd) {
	ds, err := m.agg.Submit()
	switch {
	case errors.Is(err, chord.ErrBacklogFull):
		m.err = fmt.Errorf("too many chords waiting, %s dropped", ds)
		return m, nil
	case err != nil:
		m.err = err
		return m, nil
	case ds.IsEmpty():
		m.status = "no dots selected"
		return m, clearStatusAfter(time.Second)
	}
	m.err = nil
	m.status = "sent " + ds.String()
	return m, clearStatusAfter(time.Second)
}

// View renders the chord pad.
func (m ChordModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Chord"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(m.agg.State().String()))
	b.WriteString("\n\n")

	current := m.agg.Current()
	pad := cellStyle.Render(cellart.Cell(current, 12, 9, true))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pad, "  ", m.renderLatest()))
	b.WriteString("\n")

	b.WriteString(m.renderLegend(current))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	if len(m.history) > 1 {
		b.WriteString("\n")
		b.WriteString(divider(m.width))
		b.WriteString("\n")
		for _, t := range m.history[1:] {
			b.WriteString(m.renderHistoryRow(t))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("dot keys toggle • %s: submit • %s: clear", m.keys.Submit, m.keys.Clear)))
	return b.String()
}

func (m ChordModel) renderLatest() string {
	if len(m.history) == 0 {
		return mutedStyle.Render("Toggle dots and press " + m.keys.Submit)
	}
	t := m.history[0]
	word := t.Result.Text()

	var b strings.Builder
	if t.Result.Unresolved() {
		b.WriteString(errorStyle.Render("translation not found"))
	} else if art := cellart.CachedGlyph(word, 16, 8); art != "" {
		b.WriteString(glyphStyle.Render(art))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Cell"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%c  %s", t.Dots.Cell(), t.Dots)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Luganda"))
	b.WriteString(wordStyle.Render(word))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("IPA"))
	b.WriteString(ipaStyle.Render("/" + t.Result.PhoneticText() + "/"))
	return b.String()
}

func (m ChordModel) renderLegend(current braille.DotSet) string {
	var parts []string
	for d := braille.MinDot; d <= braille.MaxDot; d++ {
		key, ok := m.keys.KeyFor(d)
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s=%d", key, d)
		if current.Has(d) {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m ChordModel) renderHistoryRow(t translate.Translation) string {
	cell := fmt.Sprintf("%c", t.Dots.Cell())
	dots := padRight(t.Dots.String(), 12)
	return fmt.Sprintf("%s  %s %s %s",
		wordStyle.Render(cell),
		mutedStyle.Render(dots),
		valueStyle.Render(padRight(t.Result.Text(), 6)),
		ipaStyle.Render("/"+t.Result.PhoneticText()+"/"),
	)
}
