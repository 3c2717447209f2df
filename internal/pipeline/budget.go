package pipeline

import (
	"sort"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
)

// AggregateBudget groups postings by (month, account, cost center), sums the
// actuals, and scales each cell by its category's budget factor. Sums are
// accumulated in posting order. Postings against unknown accounts use the
// revenue factor when the cell sum is non-negative and the cost factor
// otherwise. The result is sorted by month, account, cost center.
func AggregateBudget(txns []model.Transaction, accounts []model.Account, factors config.BudgetConfig) []model.BudgetLine {
	categoryOf := make(map[string]model.PLCategory, len(accounts))
	for _, a := range accounts {
		categoryOf[a.ID] = a.PLLevel1
	}

	sums := make(map[model.BudgetKey]float64)
	for _, t := range txns {
		key := model.BudgetKey{
			MonthStart:   t.MonthStart(),
			AccountID:    t.AccountID,
			CostCenterID: t.CostCenterID,
		}
		sums[key] += t.Amount
	}

	lines := make([]model.BudgetLine, 0, len(sums))
	for key, actual := range sums {
		cat, ok := categoryOf[key.AccountID]
		if !ok {
			cat = model.Revenue
			if actual < 0 {
				cat = model.OPEX
			}
		}
		lines = append(lines, model.BudgetLine{
			BudgetKey: key,
			Amount:    model.Round2(actual * factors.Factor(cat)),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return lessKey(lines[i].BudgetKey, lines[j].BudgetKey)
	})
	return lines
}

func lessKey(a, b model.BudgetKey) bool {
	if !a.MonthStart.Equal(b.MonthStart) {
		return a.MonthStart.Before(b.MonthStart)
	}
	if a.AccountID != b.AccountID {
		return a.AccountID < b.AccountID
	}
	return a.CostCenterID < b.CostCenterID
}

// ActualKeys returns the set of (month, account, cost center) cells present
// in the postings.
func ActualKeys(txns []model.Transaction) map[model.BudgetKey]struct{} {
	keys := make(map[model.BudgetKey]struct{})
	for _, t := range txns {
		keys[model.BudgetKey{
			MonthStart:   t.MonthStart(),
			AccountID:    t.AccountID,
			CostCenterID: t.CostCenterID,
		}] = struct{}{}
	}
	return keys
}
