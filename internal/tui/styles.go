package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("81")
	colorMuted   = lipgloss.Color("240")
	colorError   = lipgloss.Color("203")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219"))
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	missingStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	slideBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted)
	activeBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(1, 3)
)
