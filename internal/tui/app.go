package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/f3rmion/braille/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewChord ViewType = iota
	ViewTranslate
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// Deps are the services the TUI drives.
type Deps struct {
	Engine     *translate.Engine
	Aggregator *chord.Aggregator
	Speaker    views.Speaker       // optional
	Settings   views.SettingsStore // optional
	Summary    []views.Field
	Lang       string
}

// AppModel is the main TUI model
type AppModel struct {
	width        int
	height       int
	sidebarWidth int
	ready        bool

	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	chordView     views.ChordModel
	translateView views.TranslateModel
	settingsView  views.SettingsModel

	showHelp bool
}

// NewApp creates the TUI application
func NewApp(d Deps) AppModel {
	return AppModel{
		sidebarWidth: 18,
		currentView:  ViewChord,
		menuItems: []MenuItem{
			{Label: "Chord", View: ViewChord, Shortcut: "1"},
			{Label: "Translate", View: ViewTranslate, Shortcut: "2"},
			{Label: "Settings", View: ViewSettings, Shortcut: "3"},
		},
		chordView:     views.NewChordModel(d.Aggregator),
		translateView: views.NewTranslateModel(d.Engine, d.Speaker, d.Lang),
		settingsView:  views.NewSettingsModel(d.Settings, d.Summary),
	}
}

// ProgramSink forwards translations from the processing loop into p.
func ProgramSink(p *tea.Program) translate.Sink {
	return translate.SinkFunc(func(_ context.Context, t translate.Translation) {
		p.Send(views.TranslationMsg{Translation: t})
	})
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.settingsView.Init())
}

// capturesText reports whether the focused view takes typed characters, in
// which case digit and letter shortcuts are not global.
func (m AppModel) capturesText() bool {
	return !m.sidebarActive && m.currentView == ViewTranslate && m.translateView.CapturesText()
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		if !m.capturesText() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "1", "2", "3":
				m.switchTo(m.menuItems[msg.String()[0]-'1'].View)
				return m, nil
			}
		}

		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2
		m.chordView.SetSize(contentWidth, contentHeight)
		m.translateView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case views.TranslationMsg:
		// Translations arrive whichever view is showing.
		var cmd tea.Cmd
		m.chordView, cmd = m.chordView.Update(msg)
		return m, cmd
	}

	return m.delegate(msg)
}

// delegate passes msg to every view: key presses only to the active one,
// everything else to all so async results land where they belong.
func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	_, isKey := msg.(tea.KeyMsg)

	var cmd tea.Cmd
	if !isKey || m.currentView == ViewChord {
		m.chordView, cmd = m.chordView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.currentView == ViewTranslate {
		m.translateView, cmd = m.translateView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.currentView == ViewSettings {
		m.settingsView, cmd = m.settingsView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.currentView {
	case ViewChord:
		content = m.chordView.View()
	case ViewTranslate:
		content = m.translateView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	mainContent := ContentStyle.
		Width(m.width - m.sidebarWidth - 4).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), mainContent)
}

func (m AppModel) renderSidebar() string {
	items := []string{SidebarTitleStyle.Render(" ⠃⠗⠇ braille "), ""}

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label
		style := SidebarItemStyle
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemSelectedStyle
			}
		}
		items = append(items, style.Render(label))
	}

	used := len(items) + 4
	for i := 0; i < m.height-used-2; i++ {
		items = append(items, "")
	}
	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m AppModel) renderHelp() string {
	line := func(key, desc string) string {
		return helpKeyStyle.Render(key) + helpDescStyle.Render(desc) + "\n"
	}

	text := helpTitleStyle.Render("Braille to Luganda") + "\n\n"

	text += helpSectionStyle.Render("Global Keys") + "\n"
	text += line("1-3", "Switch views")
	text += line("tab", "Toggle sidebar focus")
	text += line("?", "Show this help")
	text += line("q / ctrl+c", "Quit")

	text += helpSectionStyle.Render("Chord View") + "\n"
	text += line("f d s", "Toggle dots 1 2 3")
	text += line("j k l", "Toggle dots 4 5 6")
	text += line("space", "Submit chord")
	text += line("backspace", "Clear chord")

	text += helpSectionStyle.Render("Translate View") + "\n"
	text += line("enter", "Translate")
	text += line("ctrl+y", "Copy result")
	text += line("ctrl+p", "Speak result")

	text += helpSectionStyle.Render("Settings View") + "\n"
	text += line("j/k", "Select setting")
	text += line("enter/←→", "Change value")

	text += "\n" + helpDescStyle.Foreground(ColorMuted).Italic(true).Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBoxStyle.Render(text))
}
