package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/taxsheet/internal/report"
)

// summaryView lists the report cards; editable cards jump back to their step.
type summaryView struct {
	rep    report.Report
	cursor int
}

func newSummaryView(rep report.Report) *summaryView {
	return &summaryView{rep: rep}
}

func (s *summaryView) up()   { s.cursor = max(0, s.cursor-1) }
func (s *summaryView) down() { s.cursor = max(0, min(len(s.rep.Cards)-1, s.cursor+1)) }

func (s *summaryView) selected() (report.Card, bool) {
	if len(s.rep.Cards) == 0 {
		return report.Card{}, false
	}
	return s.rep.Cards[s.cursor], true
}

func (s *summaryView) view(width, height int) string {
	cardWidth := max(30, width-2)
	blocks := make([]string, 0, len(s.rep.Cards))
	for i, c := range s.rep.Cards {
		style := cardStyle
		if i == s.cursor {
			style = selectedCardStyle
		}
		blocks = append(blocks, style.Width(cardWidth-2).Render(renderCard(c, cardWidth-4)))
	}
	// Keep the selected card in view by dropping cards above it.
	start := 0
	for start < s.cursor && lipgloss.Height(strings.Join(blocks[start:s.cursor+1], "\n")) > height {
		start++
	}
	return clipHeight(strings.Join(blocks[start:], "\n"), height)
}

func renderCard(c report.Card, width int) string {
	title := stepTitleStyle.Render(c.Title)
	if c.Editable() {
		title += mutedStyle.Render(fmt.Sprintf("  step %d", c.Step+1))
	}
	lines := []string{title}
	for _, it := range c.Items {
		lines = append(lines, labelStyle.Render(it.Label)+it.Value)
	}
	if c.Note != "" {
		lines = append(lines, mutedStyle.Render(c.Note))
	}
	if c.Table != nil && len(c.Table.Rows) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
			Headers(c.Table.Headers...).
			Rows(c.Table.Rows...).
			Width(width).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorText)
			})
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}
