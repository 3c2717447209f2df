package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/tui/components"
	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// costCenterRows is the number of list rows that fit the content area:
// card border, title and header take four lines.
func (a App) costCenterRows() int {
	return max(a.contentHeight()-4, 1)
}

func (a App) renderCostCentersTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	const format = "%-7s %-15s %-11s %-8s %-11s %10s %14s"
	header := fmt.Sprintf(format, "ID", "Name", "Department", "Region", "Manager", "Postings", "Net")

	var b strings.Builder
	b.WriteString(headStyle.Render(truncStr(header, innerW)))

	end := min(a.ccOffset+a.costCenterRows(), len(a.costCenters))
	for i := a.ccOffset; i < end; i++ {
		cs := a.costCenters[i]
		cc := cs.CostCenter
		line := fmt.Sprintf(format,
			cc.ID, truncStr(cc.Name, 15), truncStr(cc.Department, 11), cc.Region, cc.Manager,
			cli.FormatNumber(int64(cs.Transactions)), cli.FormatCompact(cs.Net))
		line = truncStr(line, innerW)

		b.WriteString("\n")
		if i == a.ccCursor {
			b.WriteString(selStyle.Width(innerW).Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}

	title := fmt.Sprintf("Cost Centers  %d/%d", min(a.ccCursor+1, len(a.costCenters)), len(a.costCenters))
	return components.ContentCard(title, b.String(), cw)
}
