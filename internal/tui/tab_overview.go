package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/tui/components"
	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func varianceTone(actual, budget float64) components.Tone {
	switch {
	case actual > budget:
		return components.TonePositive
	case actual < budget:
		return components.ToneNegative
	default:
		return components.ToneNeutral
	}
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary

	revBudget := categoryBudget(s, model.Revenue)
	metrics := []components.Metric{
		{
			Label: "Revenue",
			Value: cli.FormatCompact(s.Revenue),
			Delta: cli.FormatVariance(s.Revenue, revBudget) + " vs budget",
			Tone:  varianceTone(s.Revenue, revBudget),
		},
		{
			Label: "Gross Profit",
			Value: cli.FormatCompact(s.GrossProfit),
			Delta: cli.FormatPercent(s.GrossMargin) + " margin",
		},
		{
			Label: "OPEX",
			Value: cli.FormatCompact(s.OPEX),
			Delta: cli.FormatNumber(int64(categoryCount(s, model.OPEX))) + " postings",
		},
		{
			Label: "Operating Net",
			Value: cli.FormatCompact(s.OperatingNet),
			Delta: cli.FormatVariance(s.OperatingNet, s.BudgetNet) + " vs budget",
			Tone:  varianceTone(s.OperatingNet, s.BudgetNet),
		},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("P&L Statement", a.renderStatement(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Dataset", a.renderDatasetInfo(), halves[1]),
	}))
	b.WriteString("\n")

	nets := make([]float64, len(a.months))
	for i, m := range a.months {
		nets[i] = m.Net
	}
	trendStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	trend := trendStyle.Render("Monthly net  ") + components.Sparkline(nets, t.Accent)
	b.WriteString(components.ContentCard("Trend", trend, cw))

	return b.String()
}

func (a App) renderStatement(innerW int) string {
	t := theme.Active
	s := a.summary

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	boldStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	numW := max((innerW-16)/3, 8)
	row := func(label string, style lipgloss.Style, actual, budget float64) string {
		varStyle := lipgloss.NewStyle().Foreground(t.SignColor(actual - budget)).Background(t.Surface)
		return style.Render(fmt.Sprintf("%-16s", label)) +
			style.Render(fmt.Sprintf("%*s", numW, cli.FormatCompact(actual))) +
			style.Render(fmt.Sprintf("%*s", numW, cli.FormatCompact(budget))) +
			varStyle.Render(fmt.Sprintf("%*s", numW, cli.FormatVariance(actual, budget)))
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-16s%*s%*s%*s", "", numW, "Actual", numW, "Budget", numW, "Var")))
	b.WriteString("\n")
	for _, c := range s.Categories {
		b.WriteString(row(string(c.Category), labelStyle, c.Actual, c.Budget))
		b.WriteString("\n")
	}
	b.WriteString(row("Operating net", boldStyle, s.OperatingNet, s.BudgetNet))
	return b.String()
}

func (a App) renderDatasetInfo() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	ds := a.dataset
	rows := []struct{ label, value string }{
		{"Transactions", cli.FormatNumber(int64(a.summary.Transactions))},
		{"Period", periodLabel(a.summary)},
		{"Months", fmt.Sprintf("%d", a.summary.Months)},
		{"Cost centers", fmt.Sprintf("%d", len(ds.CostCenters))},
		{"Accounts", fmt.Sprintf("%d", len(ds.Accounts))},
		{"Budget lines", cli.FormatNumber(int64(len(ds.Budget)))},
		{"Currency", datasetCurrency(ds)},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-14s", r.label)) + valueStyle.Render(r.value)
	}
	return strings.Join(lines, "\n")
}

func categoryBudget(s model.PLSummary, c model.PLCategory) float64 {
	for _, ct := range s.Categories {
		if ct.Category == c {
			return ct.Budget
		}
	}
	return 0
}

func categoryCount(s model.PLSummary, c model.PLCategory) int {
	for _, ct := range s.Categories {
		if ct.Category == c {
			return ct.Transactions
		}
	}
	return 0
}

func datasetCurrency(ds *model.Dataset) string {
	if len(ds.Transactions) == 0 {
		return "-"
	}
	return ds.Transactions[0].Currency
}
