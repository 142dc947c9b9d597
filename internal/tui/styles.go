package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#8A8A8A")
	colorError   = lipgloss.Color("#FF5F5F")
	colorSuccess = lipgloss.Color("#5FD787")
)

// Styles groups the lipgloss styles used by every screen.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the application styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginBottom(1),
		Item: lipgloss.NewStyle().
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		Label: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Error: lipgloss.NewStyle().
			Foreground(colorError),
		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
	}
}
