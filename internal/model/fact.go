package model

import (
	"math"
	"time"
)

// DateLayout is the calendar date format used in every output table.
const DateLayout = "2006-01-02"

// Transaction is one general-ledger posting.
type Transaction struct {
	ID             string
	Date           time.Time
	Amount         float64
	Currency       string
	AccountID      string
	CostCenterID   string
	Country        string
	VendorCustomer string
	Description    string
}

// MonthStart returns the first day of the transaction's month.
func (t Transaction) MonthStart() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// BudgetKey identifies one monthly budget cell.
type BudgetKey struct {
	MonthStart   time.Time
	AccountID    string
	CostCenterID string
}

// BudgetLine is the planned amount for one (month, account, cost center).
type BudgetLine struct {
	BudgetKey
	Amount float64
}

// Dataset bundles the four generated tables.
type Dataset struct {
	CostCenters  []CostCenter
	Accounts     []Account
	Transactions []Transaction
	Budget       []BudgetLine
}

// AccountIndex maps account id to account.
func (d *Dataset) AccountIndex() map[string]Account {
	idx := make(map[string]Account, len(d.Accounts))
	for _, a := range d.Accounts {
		idx[a.ID] = a
	}
	return idx
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
