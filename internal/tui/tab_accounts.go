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

func (a App) renderAccountsTab(cw int) string {
	var cards []string
	for _, cat := range model.Categories {
		var rows []model.AccountStats
		var actual, budget float64
		for _, s := range a.accounts {
			if s.Account.PLLevel1 == cat {
				rows = append(rows, s)
				actual += s.Actual
				budget += s.Budget
			}
		}
		if len(rows) == 0 {
			continue
		}
		title := fmt.Sprintf("%s  %s  (budget %s)", cat, cli.FormatCompact(actual), cli.FormatCompact(budget))
		cards = append(cards, components.ContentCard(title, renderAccountRows(rows, components.CardInnerWidth(cw)), cw))
	}
	return strings.Join(cards, "\n")
}

func renderAccountRows(rows []model.AccountStats, innerW int) string {
	t := theme.Active
	idStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	const (
		idW    = 9
		labelW = 24
		numW   = 11
	)
	barW := max(innerW-idW-labelW-3*numW-9, 8)

	lines := make([]string, len(rows))
	for i, s := range rows {
		color := t.SignColor(s.Actual)
		varStyle := lipgloss.NewStyle().Foreground(t.SignColor(s.Actual - s.Budget)).Background(t.Surface)
		lines[i] = idStyle.Render(fmt.Sprintf("%-*s", idW, s.Account.ID)) +
			components.ShareBar(s.Account.Name, s.SharePercent/100, color, labelW, barW) +
			valueStyle.Render(fmt.Sprintf("%*s%*s", numW, cli.FormatCompact(s.Actual), numW, cli.FormatCompact(s.Budget))) +
			varStyle.Render(fmt.Sprintf("%*s", numW, cli.FormatVariance(s.Actual, s.Budget)))
	}
	return strings.Join(lines, "\n")
}
