package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/tui/components"
	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMonthlyTab(cw, contentH int) string {
	t := theme.Active

	revenue := make([]float64, len(a.months))
	costs := make([]float64, len(a.months))
	for i, m := range a.months {
		revenue[i] = m.Revenue
		costs[i] = m.Costs
	}

	chartH := max(contentH/2-4, 4)
	chart := components.ComparisonChart([]components.Series{
		{Name: "Revenue", Values: revenue, Color: t.Revenue},
		{Name: "Costs", Values: costs, Color: t.Cost},
	}, monthLabels(a.months), components.CardInnerWidth(cw), chartH)

	var b strings.Builder
	b.WriteString(components.ContentCard("Revenue vs Costs", chart, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Actual vs Budget", a.renderMonthTable(), cw))
	return b.String()
}

func (a App) renderMonthTable() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	const colW = 12
	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-10s%*s%*s%*s%*s%*s%*s",
		"Month", colW, "Revenue", colW, "Costs", colW, "Net", colW, "Budget", colW, "Variance", colW, "Var %")))

	for _, m := range a.months {
		varStyle := lipgloss.NewStyle().Foreground(t.SignColor(m.Variance)).Background(t.Surface)
		pct := "-"
		if m.BudgetNet != 0 {
			pct = cli.FormatPercent(m.Variance / math.Abs(m.BudgetNet))
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", cli.FormatMonth(m.MonthStart))))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s%*s%*s%*s",
			colW, cli.FormatCompact(m.Revenue),
			colW, cli.FormatCompact(m.Costs),
			colW, cli.FormatCompact(m.Net),
			colW, cli.FormatCompact(m.BudgetNet))))
		b.WriteString(varStyle.Render(fmt.Sprintf("%*s%*s", colW, cli.FormatVariance(m.Net, m.BudgetNet), colW, pct)))
	}
	return b.String()
}
