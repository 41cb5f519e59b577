package report

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#4682B4") // Steel blue
	goodColor   = lipgloss.Color("#228B22") // Forest green
	warnColor   = lipgloss.Color("#FF8800") // Orange
	mutedColor  = lipgloss.Color("#888888") // Medium gray
)

// styles is the set of lipgloss styles bound to one output's renderer, so
// that color is only emitted when that output is a terminal.
type styles struct {
	banner  lipgloss.Style
	section lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:  r.NewStyle().Foreground(accentColor).Bold(true),
		section: r.NewStyle().Foreground(accentColor).Bold(true),
		heading: r.NewStyle().Bold(true).Underline(true),
		label:   r.NewStyle().Bold(true),
		good:    r.NewStyle().Foreground(goodColor),
		warn:    r.NewStyle().Foreground(warnColor),
		muted:   r.NewStyle().Foreground(mutedColor),
	}
}
