package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	selected     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	invalidHint = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
)

// priorityStyle colours a priority: green up to 3, amber up to 7, red above.
func priorityStyle(p int) lipgloss.Style {
	switch {
	case p <= 3:
		return priorityLow
	case p <= 7:
		return priorityMedium
	default:
		return priorityHigh
	}
}
