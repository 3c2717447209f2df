// Package model defines the dimension and fact types of the mock ledger.
package model

// PLCategory is the top-level P&L classification of an account.
type PLCategory string

const (
	Revenue PLCategory = "Revenue"
	COGS    PLCategory = "COGS"
	OPEX    PLCategory = "OPEX"
)

// Categories lists the P&L categories in reporting order.
var Categories = []PLCategory{Revenue, COGS, OPEX}

// SortOrder returns the reporting position of the category (1-based),
// or 0 for an unknown value.
func (c PLCategory) SortOrder() int {
	switch c {
	case Revenue:
		return 1
	case COGS:
		return 2
	case OPEX:
		return 3
	}
	return 0
}

// Valid reports whether c is one of the known categories.
func (c PLCategory) Valid() bool {
	return c.SortOrder() != 0
}

// IsCost reports whether amounts booked to the category are expenses.
func (c PLCategory) IsCost() bool {
	return c == COGS || c == OPEX
}

// CostCenter is an organizational unit that revenue and expenses are booked to.
type CostCenter struct {
	ID         string
	Name       string
	Department string
	Region     string
	Manager    string
}

// Account is one line of the chart of accounts.
type Account struct {
	ID       string
	Name     string
	PLLevel1 PLCategory
	PLLevel2 string
	PLLevel3 string
}

// SortPL1 is the reporting order of the account's top-level category.
func (a Account) SortPL1() int {
	return a.PLLevel1.SortOrder()
}
