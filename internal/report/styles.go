package report

import "github.com/charmbracelet/lipgloss"

var (
	titleColor   = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	dangerColor  = lipgloss.Color("#FF6B6B")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(titleColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Width(28)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	dangerStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 1)
)
