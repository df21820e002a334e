// Package tui provides the interactive terminal UI: a chord pad, a Braille
// text translator and the settings editor.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Cells and graphemes share the accent, IPA uses the secondary.
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B")
	ColorSecondary = lipgloss.Color("#4ecdc4")
	ColorAccent    = lipgloss.Color("#ffe66d")
	ColorMuted     = lipgloss.Color("#666666")
	ColorText      = lipgloss.Color("#F1FAEE")
	ColorPanel     = lipgloss.Color("#1b263b")
	ColorBorder    = lipgloss.Color("#3d5a80")
)

// menuItem is the base of every sidebar entry.
var menuItem = lipgloss.NewStyle().Padding(0, 1)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	SidebarTitleStyle = menuItem.
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorPanel).
				MarginBottom(1)

	SidebarItemStyle         = menuItem.Foreground(ColorMuted)
	SidebarItemSelectedStyle = menuItem.Bold(true).Foreground(ColorSecondary)
	SidebarItemActiveStyle   = menuItem.Bold(true).Foreground(ColorAccent).Background(ColorPanel)
	SidebarHelpStyle         = menuItem.Foreground(ColorMuted).MarginTop(1)
)

// Help overlay styles
var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).MarginTop(1)
	helpKeyStyle     = lipgloss.NewStyle().Foreground(ColorAccent).Width(12)
	helpDescStyle    = lipgloss.NewStyle().Foreground(ColorText)
	helpBoxStyle     = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorSecondary).
				Padding(1, 2).
				Width(50)
)

// ContentStyle pads the active view.
var ContentStyle = lipgloss.NewStyle().Padding(1, 2)
