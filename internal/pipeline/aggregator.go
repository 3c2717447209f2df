package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finmock/internal/model"
)

// Summarize computes the top-level P&L across a dataset.
func Summarize(ds *model.Dataset) model.PLSummary {
	accounts := ds.AccountIndex()

	byCat := make(map[model.PLCategory]*model.CategoryTotals, len(model.Categories))
	for _, c := range model.Categories {
		byCat[c] = &model.CategoryTotals{Category: c}
	}

	var s model.PLSummary
	months := make(map[time.Time]struct{})

	for _, t := range ds.Transactions {
		s.Transactions++
		if s.FirstDate.IsZero() || t.Date.Before(s.FirstDate) {
			s.FirstDate = t.Date
		}
		if t.Date.After(s.LastDate) {
			s.LastDate = t.Date
		}
		months[t.MonthStart()] = struct{}{}

		if ct, ok := byCat[accounts[t.AccountID].PLLevel1]; ok {
			ct.Transactions++
			ct.Actual += t.Amount
		}
	}

	for _, b := range ds.Budget {
		s.BudgetNet += b.Amount
		if ct, ok := byCat[accounts[b.AccountID].PLLevel1]; ok {
			ct.Budget += b.Amount
		}
	}

	s.Months = len(months)
	for _, c := range model.Categories {
		s.Categories = append(s.Categories, *byCat[c])
	}

	s.Revenue = byCat[model.Revenue].Actual
	s.COGS = byCat[model.COGS].Actual
	s.OPEX = byCat[model.OPEX].Actual
	s.GrossProfit = s.Revenue + s.COGS
	s.OperatingNet = s.GrossProfit + s.OPEX
	if s.Revenue > 0 {
		s.GrossMargin = s.GrossProfit / s.Revenue
	}
	s.Variance = s.OperatingNet - s.BudgetNet

	return s
}

// AggregateMonths computes actual vs budget per calendar month, oldest first.
func AggregateMonths(ds *model.Dataset) []model.MonthlyStats {
	monthMap := make(map[time.Time]*model.MonthlyStats)
	get := func(m time.Time) *model.MonthlyStats {
		ms, ok := monthMap[m]
		if !ok {
			ms = &model.MonthlyStats{MonthStart: m}
			monthMap[m] = ms
		}
		return ms
	}

	for _, t := range ds.Transactions {
		ms := get(t.MonthStart())
		if t.Amount >= 0 {
			ms.Revenue += t.Amount
		} else {
			ms.Costs += t.Amount
		}
	}
	for _, b := range ds.Budget {
		get(b.MonthStart).BudgetNet += b.Amount
	}

	months := make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		ms.Net = ms.Revenue + ms.Costs
		ms.Variance = ms.Net - ms.BudgetNet
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].MonthStart.Before(months[j].MonthStart)
	})
	return months
}

// AggregateAccounts computes per-account totals in chart order.
// SharePercent is the account's share of its category's absolute actual.
func AggregateAccounts(ds *model.Dataset) []model.AccountStats {
	idx := make(map[string]int, len(ds.Accounts))
	stats := make([]model.AccountStats, len(ds.Accounts))
	for i, a := range ds.Accounts {
		idx[a.ID] = i
		stats[i].Account = a
	}

	for _, t := range ds.Transactions {
		if i, ok := idx[t.AccountID]; ok {
			stats[i].Transactions++
			stats[i].Actual += t.Amount
		}
	}
	for _, b := range ds.Budget {
		if i, ok := idx[b.AccountID]; ok {
			stats[i].Budget += b.Amount
		}
	}

	catTotal := make(map[model.PLCategory]float64)
	for _, s := range stats {
		catTotal[s.Account.PLLevel1] += math.Abs(s.Actual)
	}
	for i := range stats {
		if total := catTotal[stats[i].Account.PLLevel1]; total > 0 {
			stats[i].SharePercent = math.Abs(stats[i].Actual) / total * 100
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Account.SortPL1() < stats[j].Account.SortPL1()
	})
	return stats
}

// AggregateCostCenters computes per-cost-center net, highest net first.
func AggregateCostCenters(ds *model.Dataset) []model.CostCenterStats {
	ccMap := make(map[string]*model.CostCenterStats, len(ds.CostCenters))
	for _, cc := range ds.CostCenters {
		ccMap[cc.ID] = &model.CostCenterStats{CostCenter: cc}
	}
	for _, t := range ds.Transactions {
		if cs, ok := ccMap[t.CostCenterID]; ok {
			cs.Transactions++
			cs.Net += t.Amount
		}
	}

	out := make([]model.CostCenterStats, 0, len(ccMap))
	for _, cs := range ccMap {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net > out[j].Net
		}
		return out[i].CostCenter.ID < out[j].CostCenter.ID
	})
	return out
}

// FilterByDepartment returns a copy of the dataset restricted to postings and
// budget lines of cost centers whose department matches (substring, case-insensitive).
func FilterByDepartment(ds *model.Dataset, department string) *model.Dataset {
	if department == "" {
		return ds
	}

	keep := make(map[string]struct{})
	var ccs []model.CostCenter
	for _, cc := range ds.CostCenters {
		if containsIgnoreCase(cc.Department, department) {
			keep[cc.ID] = struct{}{}
			ccs = append(ccs, cc)
		}
	}

	out := &model.Dataset{CostCenters: ccs, Accounts: ds.Accounts}
	for _, t := range ds.Transactions {
		if _, ok := keep[t.CostCenterID]; ok {
			out.Transactions = append(out.Transactions, t)
		}
	}
	for _, b := range ds.Budget {
		if _, ok := keep[b.CostCenterID]; ok {
			out.Budget = append(out.Budget, b)
		}
	}
	return out
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
