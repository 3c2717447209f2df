// Package source discovers and parses previously generated table files.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/theirongolddev/finmock/internal/model"
)

// ParseFile reads one table file. Rows with the wrong column count or
// unparseable values are skipped and counted in ParseErrors; a missing or
// mismatched header is a hard error.
func ParseFile(df DiscoveredFile) ParseResult {
	res := ParseResult{File: df}

	f, err := os.Open(df.Path)
	if err != nil {
		res.Err = err
		return res
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(bufio.NewReaderSize(f, 256*1024))
	r.FieldsPerRecord = -1

	var (
		header []string
		parse  func([]string) error
	)
	switch df.Name {
	case model.FileGL:
		header = model.HeaderGL
		parse = func(rec []string) error {
			t, err := parseTransaction(rec)
			if err == nil {
				res.Transactions = append(res.Transactions, t)
			}
			return err
		}
	case model.FileBudget:
		header = model.HeaderBudget
		parse = func(rec []string) error {
			b, err := parseBudgetLine(rec)
			if err == nil {
				res.Budget = append(res.Budget, b)
			}
			return err
		}
	case model.FileAccount:
		header = model.HeaderAccount
		parse = func(rec []string) error {
			a, err := parseAccount(rec)
			if err == nil {
				res.Accounts = append(res.Accounts, a)
			}
			return err
		}
	case model.FileCostCenter:
		header = model.HeaderCostCenter
		parse = func(rec []string) error {
			res.CostCenters = append(res.CostCenters, model.CostCenter{
				ID: rec[0], Name: rec[1], Department: rec[2], Region: rec[3], Manager: rec[4],
			})
			return nil
		}
	default:
		res.Err = fmt.Errorf("unknown table file %q", df.Name)
		return res
	}

	got, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			res.Err = fmt.Errorf("%s: empty file", df.Name)
		} else {
			res.Err = fmt.Errorf("%s: reading header: %w", df.Name, err)
		}
		return res
	}
	if !slices.Equal(got, header) {
		res.Err = fmt.Errorf("%s: unexpected header %v", df.Name, got)
		return res
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.ParseErrors++
				continue
			}
			res.Err = err
			return res
		}
		if len(rec) != len(header) {
			res.ParseErrors++
			continue
		}
		if err := parse(rec); err != nil {
			res.ParseErrors++
			continue
		}
		res.Rows++
	}

	return res
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.UTC)
}

func parseTransaction(rec []string) (model.Transaction, error) {
	date, err := parseDate(rec[1])
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:             rec[0],
		Date:           date,
		Amount:         amount,
		Currency:       rec[3],
		AccountID:      rec[4],
		CostCenterID:   rec[5],
		Country:        rec[6],
		VendorCustomer: rec[7],
		Description:    rec[8],
	}, nil
}

func parseBudgetLine(rec []string) (model.BudgetLine, error) {
	month, err := parseDate(rec[0])
	if err != nil {
		return model.BudgetLine{}, err
	}
	amount, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return model.BudgetLine{}, err
	}
	return model.BudgetLine{
		BudgetKey: model.BudgetKey{MonthStart: month, AccountID: rec[1], CostCenterID: rec[2]},
		Amount:    amount,
	}, nil
}

func parseAccount(rec []string) (model.Account, error) {
	if _, err := strconv.Atoi(rec[5]); err != nil {
		return model.Account{}, err
	}
	return model.Account{
		ID:       rec[0],
		Name:     rec[1],
		PLLevel1: model.PLCategory(rec[2]),
		PLLevel2: rec[3],
		PLLevel3: rec[4],
	}, nil
}
