package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorMantle   lipgloss.Color = "#181825"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorDim      lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Background(colorMantle).Bold(true)
	stepTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	groupStyle     = lipgloss.NewStyle().Foreground(colorDim).Bold(true)

	labelStyle        = lipgloss.NewStyle().Foreground(colorMuted).Width(32)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Width(32)
	errorStyle        = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorDim)
	checkedStyle      = lipgloss.NewStyle().Foreground(colorSuccess)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(colorAccent)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
