package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorAccent  = lipgloss.Color("#2196F3")
	colorMuted   = lipgloss.Color("#7a8599")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorBorder  = lipgloss.Color("#2a3850")
)

type Styles struct {
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Footer      lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Selected    lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Panel       lipgloss.Style
	Badge       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorAccent).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Label: lipgloss.NewStyle().
			Bold(true),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		Error: lipgloss.NewStyle().
			Foreground(colorError),
		Success: lipgloss.NewStyle().
			Foreground(colorPrimary),
		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(colorAccent),
	}
}
