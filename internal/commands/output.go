package commands

import "github.com/charmbracelet/lipgloss"

var (
	special = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	muted   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	successStyle = lipgloss.NewStyle().Foreground(special)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00"))
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(18)
)
