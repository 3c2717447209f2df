package pipeline

import (
	"fmt"
	"math"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
)

// amountTolerance is half a cent; amounts carry two decimals.
const amountTolerance = 0.005

// Violation is one broken dataset invariant.
type Violation struct {
	Rule   string
	Detail string
}

func (v Violation) String() string {
	return v.Rule + ": " + v.Detail
}

// Expectations holds the row counts a dataset should have and the budget
// factors its budget was derived with. Zero fields are not checked.
type Expectations struct {
	Transactions int
	CostCenters  int
	Accounts     int
	Budget       config.BudgetConfig
}

// Verify checks referential integrity, the sign convention of each P&L
// category, and that every budget cell aggregates observed actuals. With
// budget factors set, each budget amount must also equal the rounded sum of
// its cell's actuals times the category factor.
func Verify(ds *model.Dataset, exp Expectations) []Violation {
	var out []Violation
	add := func(rule, format string, args ...any) {
		out = append(out, Violation{Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	checkCount := func(table string, got, want int) {
		if want > 0 && got != want {
			add("row-count", "%s has %d rows, want %d", table, got, want)
		}
	}
	checkCount("fact_gl", len(ds.Transactions), exp.Transactions)
	checkCount("dim_costcenter", len(ds.CostCenters), exp.CostCenters)
	checkCount("dim_account", len(ds.Accounts), exp.Accounts)

	accounts := ds.AccountIndex()
	for _, a := range ds.Accounts {
		if !a.PLLevel1.Valid() {
			add("account-category", "account %s has unknown category %q", a.ID, a.PLLevel1)
		}
	}

	ccs := make(map[string]struct{}, len(ds.CostCenters))
	for _, cc := range ds.CostCenters {
		ccs[cc.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(ds.Transactions))
	for _, t := range ds.Transactions {
		if _, dup := ids[t.ID]; dup {
			add("unique-id", "transaction id %s appears more than once", t.ID)
		}
		ids[t.ID] = struct{}{}

		if _, ok := ccs[t.CostCenterID]; !ok {
			add("cost-center-ref", "%s references unknown cost center %s", t.ID, t.CostCenterID)
		}

		acc, ok := accounts[t.AccountID]
		if !ok {
			add("account-ref", "%s references unknown account %s", t.ID, t.AccountID)
			continue
		}

		switch {
		case acc.PLLevel1 == model.Revenue && t.Amount <= 0:
			add("amount-sign", "%s is revenue with non-positive amount %.2f", t.ID, t.Amount)
		case acc.PLLevel1.IsCost() && t.Amount >= 0:
			add("amount-sign", "%s is %s with non-negative amount %.2f", t.ID, acc.PLLevel1, t.Amount)
		}

		wantDesc := "Expense"
		if acc.PLLevel1 == model.Revenue {
			wantDesc = "Invoice"
		}
		if t.Description != wantDesc {
			add("description", "%s is %s but described as %q", t.ID, acc.PLLevel1, t.Description)
		}
	}

	actual := ActualKeys(ds.Transactions)
	for _, b := range ds.Budget {
		if _, ok := actual[b.BudgetKey]; !ok {
			add("budget-subset", "budget cell %s/%s/%s has no actuals",
				b.MonthStart.Format(model.DateLayout), b.AccountID, b.CostCenterID)
		}
	}

	if exp.Budget.RevenueFactor > 0 && exp.Budget.CostFactor > 0 {
		want := make(map[model.BudgetKey]float64, len(ds.Budget))
		for _, b := range AggregateBudget(ds.Transactions, ds.Accounts, exp.Budget) {
			want[b.BudgetKey] = b.Amount
		}
		for _, b := range ds.Budget {
			w, ok := want[b.BudgetKey]
			if ok && math.Abs(b.Amount-w) > amountTolerance {
				add("budget-amount", "budget cell %s/%s/%s is %.2f, want %.2f",
					b.MonthStart.Format(model.DateLayout), b.AccountID, b.CostCenterID, b.Amount, w)
			}
		}
	}

	return out
}

// StoreSnapshot is what a SQLite sink reports about the dataset it holds.
type StoreSnapshot struct {
	Counts map[string]int
	Totals map[model.PLCategory]float64
}

// VerifyStore checks that a database holds the same tables as ds: equal row
// counts per table and equal posting totals per P&L category. Totals allow
// for the database summing in a different order.
func VerifyStore(ds *model.Dataset, snap StoreSnapshot) []Violation {
	var out []Violation
	add := func(rule, format string, args ...any) {
		out = append(out, Violation{Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	tables := []struct {
		name string
		rows int
	}{
		{model.TableGL, len(ds.Transactions)},
		{model.TableBudget, len(ds.Budget)},
		{model.TableAccount, len(ds.Accounts)},
		{model.TableCostCenter, len(ds.CostCenters)},
	}
	for _, tbl := range tables {
		if got := snap.Counts[tbl.name]; got != tbl.rows {
			add("sqlite-count", "%s has %d rows in sqlite, %d in csv", tbl.name, got, tbl.rows)
		}
	}

	accounts := ds.AccountIndex()
	totals := make(map[model.PLCategory]float64, len(model.Categories))
	for _, t := range ds.Transactions {
		if acc, ok := accounts[t.AccountID]; ok {
			totals[acc.PLLevel1] += t.Amount
		}
	}
	for _, c := range model.Categories {
		if got, want := snap.Totals[c], totals[c]; math.Abs(got-want) > max(amountTolerance, math.Abs(want)*1e-9) {
			add("sqlite-total", "%s totals %.2f in sqlite, %.2f in csv", c, got, want)
		}
	}
	return out
}
