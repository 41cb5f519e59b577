package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#4682B4") // Steel blue
	goodColor   = lipgloss.Color("#228B22") // Forest green
	errorColor  = lipgloss.Color("#CC3333") // Red
	mutedColor  = lipgloss.Color("#888888") // Medium gray

	HeaderStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	GoodStyle     = lipgloss.NewStyle().Foreground(goodColor)
	ErrorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
)
