package source

import "github.com/theirongolddev/finmock/internal/model"

// DiscoveredFile is one known table file found in an output directory.
type DiscoveredFile struct {
	Name string // base name, one of model.Files
	Path string
	Size int64
}

// ParseResult holds the rows parsed from a single table file. Only the
// slice matching the file's table is populated.
type ParseResult struct {
	File         DiscoveredFile
	Transactions []model.Transaction
	Budget       []model.BudgetLine
	Accounts     []model.Account
	CostCenters  []model.CostCenter
	Rows         int
	ParseErrors  int
	Err          error
}
