package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = keyStyle.Background(colorMantle)
	h.Styles.ShortDesc = helpDescStyle.Background(colorMantle)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Background(colorMantle)
	return h
}

func renderFooter(h help.Model, width int, bindings []key.Binding) string {
	h.Width = width
	return renderBar(footerStyle, width, h.ShortHelpView(bindings), colorMantle)
}

func renderStatusBar(width int, msg string, isErr bool) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(statusErrBarStyle, width, msg, colorSurface0)
	}
	return renderBar(statusBarStyle, width, msg, colorSurface0)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	width = max(1, width)
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
