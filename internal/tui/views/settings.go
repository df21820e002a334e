package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/braille/internal/store"
)

// SettingsStore reads and writes user settings.
type SettingsStore interface {
	Settings(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, name, value string) error
}

// Field is one read-only line of the configuration summary.
type Field struct {
	Label string
	Value string
}

// settingChoices are the values a setting cycles through.
var settingChoices = map[string][]string{
	store.SettingSpeechSpeed: {"slow", "normal", "fast"},
	store.SettingVoiceGender: {"female", "male"},
	store.SettingAudioVolume: {"25", "50", "75", "100"},
}

type settingsLoadedMsg struct {
	values map[string]string
	err    error
}

type settingSavedMsg struct {
	name, value string
	err         error
}

// SettingsModel edits user settings and shows the active configuration.
type SettingsModel struct {
	store   SettingsStore
	summary []Field

	names    []string
	values   map[string]string
	selected int
	err      error
	status   string

	width  int
	height int
}

// NewSettingsModel creates the settings view. s may be nil when no
// database is open.
func NewSettingsModel(s SettingsStore, summary []Field) SettingsModel {
	return SettingsModel{
		store:   s,
		summary: summary,
		values:  map[string]string{},
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init loads the stored settings.
func (m SettingsModel) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	s := m.store
	return func() tea.Msg {
		values, err := s.Settings(context.Background())
		return settingsLoadedMsg{values: values, err: err}
	}
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.err = msg.err
		if msg.values != nil {
			m.values = msg.values
		}
		m.names = settingNames(m.values)
		return m, nil

	case settingSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.values[msg.name] = msg.value
		m.status = fmt.Sprintf("%s = %s", msg.name, msg.value)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.names)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "enter", "l", "right", " ":
			return m, m.cycle(1)
		case "h", "left":
			return m, m.cycle(-1)
		}
	}
	return m, nil
}

// cycle moves the selected setting to its next or previous choice.
func (m SettingsModel) cycle(step int) tea.Cmd {
	if m.store == nil || m.selected >= len(m.names) {
		return nil
	}
	name := m.names[m.selected]
	choices, ok := settingChoices[name]
	if !ok {
		return nil
	}
	i := slices.Index(choices, m.values[name])
	next := choices[(i+step+len(choices))%len(choices)]
	if i < 0 && step < 0 {
		next = choices[len(choices)-1]
	}

	s := m.store
	return func() tea.Msg {
		err := s.SetSetting(context.Background(), name, next)
		return settingSavedMsg{name: name, value: next, err: err}
	}
}

// settingNames lists stored settings plus the editable defaults, sorted.
func settingNames(values map[string]string) []string {
	var names []string
	for n := range values {
		names = append(names, n)
	}
	for n := range settingChoices {
		if _, ok := values[n]; !ok {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	for _, f := range m.summary {
		b.WriteString(labelStyle.Render(f.Label))
		b.WriteString(valueStyle.Render(f.Value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(divider(m.width))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(mutedStyle.Render("No database open"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Run 'braille init' to create one"))
		b.WriteString("\n")
	case len(m.names) == 0:
		b.WriteString(mutedStyle.Render("Loading settings..."))
		b.WriteString("\n")
	default:
		for i, name := range m.names {
			value := m.values[name]
			if value == "" {
				value = "(unset)"
			}
			row := padRight(name, 16) + value
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString(valueStyle.Render("  " + row))
			}
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render("saved " + m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("j/k: select • enter/←→: change value"))
	return b.String()
}
