package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B29632"))
	clockStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#89B4FA"))
	pausedStyle  = clockStyle.BorderForeground(lipgloss.Color("#585b70")).Faint(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)
