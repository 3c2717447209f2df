package model

import "time"

// CategoryTotals holds actual and budget sums for one P&L category.
type CategoryTotals struct {
	Category     PLCategory
	Transactions int
	Actual       float64
	Budget       float64
}

// PLSummary is the top-level aggregate across a dataset.
type PLSummary struct {
	Transactions int
	FirstDate    time.Time
	LastDate     time.Time
	Months       int

	Categories []CategoryTotals

	Revenue      float64
	COGS         float64
	OPEX         float64
	GrossProfit  float64
	OperatingNet float64
	GrossMargin  float64 // GrossProfit / Revenue, 0 when there is no revenue

	BudgetNet float64
	Variance  float64 // OperatingNet - BudgetNet
}

// MonthlyStats holds actual vs budget for a calendar month.
type MonthlyStats struct {
	MonthStart time.Time
	Revenue    float64
	Costs      float64 // COGS + OPEX, negative
	Net        float64
	BudgetNet  float64
	Variance   float64
}

// AccountStats holds aggregated postings for a single account.
type AccountStats struct {
	Account      Account
	Transactions int
	Actual       float64
	Budget       float64
	SharePercent float64 // share of the category's absolute actual
}

// CostCenterStats holds aggregated postings for a single cost center.
type CostCenterStats struct {
	CostCenter   CostCenter
	Transactions int
	Net          float64
}
