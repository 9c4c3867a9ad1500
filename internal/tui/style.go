package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9aa5ce")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2a6df4", Dark: "#7aa2f7"}).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E"))

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f7768e")).
				Render

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#2a6df4", Dark: "#7aa2f7"}).
				Render

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1, 2)
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
