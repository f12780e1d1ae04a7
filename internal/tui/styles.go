package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles of the terminal client
type Styles struct {
	Title     lipgloss.Style
	Hint      lipgloss.Style
	Button    lipgloss.Style
	Busy      lipgloss.Style
	Label     lipgloss.Style
	Code      lipgloss.Style
	Reasoning lipgloss.Style
	Error     lipgloss.Style
	Result    lipgloss.Style
}

// DefaultStyles returns the default palette
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366f1")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		Button:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#6366f1")).Padding(0, 2),
		Busy:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		Code:      lipgloss.NewStyle().Bold(true),
		Reasoning: lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
		Result:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1),
	}
}
