package views

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/clipboard"
	"github.com/f3rmion/braille/internal/table"
	"github.com/f3rmion/braille/internal/translate"
)

// Speaker plays a translated word.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

type translatedMsg struct {
	result  translate.Result
	details []translate.WordDetails
	err     error
}

type spokenMsg struct {
	err error
}

// TranslateModel translates typed Braille text or dot notation.
type TranslateModel struct {
	input   textinput.Model
	spinner spinner.Model
	engine  *translate.Engine
	speaker Speaker
	lang    string

	result   translate.Result
	details  []translate.WordDetails
	err      error
	status   string
	busy     bool
	speaking bool

	width  int
	height int
}

// NewTranslateModel creates the translate view. speaker may be nil.
func NewTranslateModel(engine *translate.Engine, speaker Speaker, lang string) TranslateModel {
	ti := textinput.New()
	ti.Placeholder = "⠍⠥⠅⠺⠁⠝⠕, mukwano or dots: 134 136 13 / 1"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))

	return TranslateModel{
		input:   ti,
		spinner: sp,
		engine:  engine,
		speaker: speaker,
		lang:    lang,
	}
}

// SetSize updates the view dimensions.
func (m *TranslateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-10, 20)
}

// CapturesText reports whether typed characters belong to the input.
func (m TranslateModel) CapturesText() bool {
	return m.input.Focused()
}

// ParseInput turns what the user typed into Braille text. Input holding
// Braille cells is used as is, letters are spelled through g and anything
// else is read as dot notation.
func ParseInput(s string, g *table.GraphemeTable) (translate.BrailleText, error) {
	s = strings.TrimSpace(s)
	if s == "" || braille.ContainsCells(s) {
		return translate.BrailleText(s), nil
	}
	if strings.ContainsFunc(s, unicode.IsLetter) {
		text, missing := g.Encode(s)
		if len(missing) > 0 {
			return "", fmt.Errorf("no braille cell for %s", strings.Join(missing, ", "))
		}
		return translate.BrailleText(text), nil
	}
	text, err := braille.EncodeText(s)
	if err != nil {
		return "", err
	}
	return translate.BrailleText(text), nil
}

// Update handles messages.
func (m TranslateModel) Update(msg tea.Msg) (TranslateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			text, err := ParseInput(m.input.Value(), m.engine.Graphemes())
			if err != nil {
				m.err = err
				return m, nil
			}
			if text == "" {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, tea.Batch(m.translate(text), m.spinner.Tick)
		case "ctrl+y":
			if m.result.Empty() {
				return m, nil
			}
			out := m.result.Text() + " /" + m.result.PhoneticText() + "/"
			if err := clipboard.Write(out); err != nil {
				m.err = fmt.Errorf("copying: %w", err)
				return m, nil
			}
			m.status = "copied"
			return m, clearStatusAfter(2 * time.Second)
		case "ctrl+p":
			if m.speaker == nil || m.speaking || m.result.Empty() || m.result.Unresolved() {
				return m, nil
			}
			m.speaking = true
			return m, tea.Batch(m.speak(m.result.Text()), m.spinner.Tick)
		}

	case translatedMsg:
		m.busy = false
		m.err = msg.err
		m.result = msg.result
		m.details = msg.details
		return m, nil

	case spokenMsg:
		m.speaking = false
		if msg.err != nil {
			m.err = fmt.Errorf("speaking: %w", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy && !m.speaking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TranslateModel) translate(text translate.BrailleText) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx := context.Background()
		r, err := engine.Translate(ctx, text)
		if err != nil {
			return translatedMsg{err: err}
		}
		var details []translate.WordDetails
		for _, w := range strings.Fields(string(text)) {
			d, err := engine.Details(ctx, w)
			if err != nil {
				continue
			}
			details = append(details, d)
		}
		return translatedMsg{result: r, details: details}
	}
}

func (m TranslateModel) speak(text string) tea.Cmd {
	speaker, lang := m.speaker, m.lang
	return func() tea.Msg {
		return spokenMsg{err: speaker.Speak(context.Background(), text, lang)}
	}
}

// View renders the translate view.
func (m TranslateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Translate"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString("\n" + m.spinner.View() + mutedStyle.Render(" Translating...") + "\n")
	case m.speaking:
		b.WriteString("\n" + m.spinner.View() + mutedStyle.Render(" Speaking...") + "\n")
	}

	if !m.result.Empty() {
		b.WriteString(m.renderResult())
	}

	if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	var help []string
	help = append(help, "enter: translate")
	if !m.result.Empty() {
		if clipboard.Available() {
			help = append(help, "ctrl+y: copy")
		}
		if m.speaker != nil {
			help = append(help, "ctrl+p: speak")
		}
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}

func (m TranslateModel) renderResult() string {
	width := max(m.width-8, 20)

	var box strings.Builder
	if m.result.Unresolved() {
		box.WriteString(errorStyle.Render("translation not found"))
		box.WriteString("\n")
	}
	box.WriteString(labelStyle.Render("Luganda"))
	box.WriteString(wordStyle.Render(wordWrap(m.result.Text(), width-12)))
	box.WriteString("\n")
	box.WriteString(labelStyle.Render("IPA"))
	box.WriteString(ipaStyle.Render(wordWrap("/"+m.result.PhoneticText()+"/", width-12)))

	var b strings.Builder
	b.WriteString(boxStyle.Render(box.String()))
	b.WriteString("\n")
	for _, d := range m.details {
		b.WriteString(renderDetails(d))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDetails(d translate.WordDetails) string {
	var b strings.Builder
	b.WriteString(wordStyle.Render(d.Pattern))
	b.WriteString("  ")
	if d.Found {
		b.WriteString(successStyle.Render("dictionary"))
		b.WriteString("\n")
		if d.Meaning != "" {
			b.WriteString(labelStyle.Render("Meaning"))
			b.WriteString(valueStyle.Render(d.Meaning))
			b.WriteString("\n")
		}
		if d.Category != "" {
			b.WriteString(labelStyle.Render("Category"))
			b.WriteString(valueStyle.Render(d.Category))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(mutedStyle.Render("by character"))
	b.WriteString("\n")
	for _, c := range d.Characters {
		row := fmt.Sprintf("  %s  %s %s %s %s",
			wordStyle.Render(c.Code),
			mutedStyle.Render(padRight(c.Dots, 12)),
			valueStyle.Render(padRight(c.Grapheme, 4)),
			ipaStyle.Render(padRight("/"+c.Phonetic+"/", 8)),
			mutedStyle.Render(c.Description),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
