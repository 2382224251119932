package ui

import "github.com/charmbracelet/lipgloss"

// Shared styles for command output and interactive prompts. They degrade
// to plain text when stdout is not a terminal.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	OKStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	WarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	DimStyle      = lipgloss.NewStyle().Faint(true)
)
