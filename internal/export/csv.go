// Package export writes the generated tables as comma-separated files.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/theirongolddev/finmock/internal/model"
)

// FileResult describes one written table.
type FileResult struct {
	Name  string
	Path  string
	Rows  int
	Bytes int64
}

// WriteDataset writes all four tables into dir, creating it if needed.
// Results are returned in model.Files order.
func WriteDataset(dir string, ds *model.Dataset) ([]FileResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	tables := []struct {
		name   string
		header []string
		rows   int
		row    func(i int) []string
	}{
		{model.FileGL, model.HeaderGL, len(ds.Transactions), func(i int) []string {
			return TransactionRecord(ds.Transactions[i])
		}},
		{model.FileBudget, model.HeaderBudget, len(ds.Budget), func(i int) []string {
			return BudgetRecord(ds.Budget[i])
		}},
		{model.FileAccount, model.HeaderAccount, len(ds.Accounts), func(i int) []string {
			return AccountRecord(ds.Accounts[i])
		}},
		{model.FileCostCenter, model.HeaderCostCenter, len(ds.CostCenters), func(i int) []string {
			return CostCenterRecord(ds.CostCenters[i])
		}},
	}

	results := make([]FileResult, 0, len(tables))
	for _, tb := range tables {
		path := filepath.Join(dir, tb.name)
		size, err := writeTable(path, tb.header, tb.rows, tb.row)
		if err != nil {
			return results, fmt.Errorf("writing %s: %w", tb.name, err)
		}
		results = append(results, FileResult{Name: tb.name, Path: path, Rows: tb.rows, Bytes: size})
	}
	return results, nil
}

func writeTable(path string, header []string, n int, row func(int) []string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriterSize(f, 256*1024)
	w := csv.NewWriter(bw)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return 0, err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			_ = f.Close()
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	return info.Size(), f.Close()
}

// FormatAmount renders a monetary value with exactly two decimals.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// TransactionRecord returns the fact_gl.csv columns of t.
func TransactionRecord(t model.Transaction) []string {
	return []string{
		t.ID,
		t.Date.Format(model.DateLayout),
		FormatAmount(t.Amount),
		t.Currency,
		t.AccountID,
		t.CostCenterID,
		t.Country,
		t.VendorCustomer,
		t.Description,
	}
}

// BudgetRecord returns the fact_budget_monthly.csv columns of b.
func BudgetRecord(b model.BudgetLine) []string {
	return []string{
		b.MonthStart.Format(model.DateLayout),
		b.AccountID,
		b.CostCenterID,
		FormatAmount(b.Amount),
	}
}

// AccountRecord returns the dim_account.csv columns of a.
func AccountRecord(a model.Account) []string {
	return []string{
		a.ID,
		a.Name,
		string(a.PLLevel1),
		a.PLLevel2,
		a.PLLevel3,
		strconv.Itoa(a.SortPL1()),
	}
}

// CostCenterRecord returns the dim_costcenter.csv columns of cc.
func CostCenterRecord(cc model.CostCenter) []string {
	return []string{cc.ID, cc.Name, cc.Department, cc.Region, cc.Manager}
}
