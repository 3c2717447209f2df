// Package store loads a generated dataset into a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/theirongolddev/finmock/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is a SQLite database holding one generated dataset.
type DB struct {
	db *sql.DB
}

// RunInfo describes the generation run recorded alongside the tables.
type RunInfo struct {
	ID           string
	Seed         uint64
	Transactions int
	StartDate    string
	EndDate      string
	Currency     string
	CreatedAt    time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// SaveDataset replaces the contents of every table with ds in a single
// transaction and records run. Dimensions are inserted before facts so the
// foreign keys hold.
func (s *DB) SaveDataset(ds *model.Dataset, run RunInfo) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"fact_budget_monthly", "fact_gl", "dim_account", "dim_costcenter", "runs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err = tx.Exec(`INSERT INTO runs
		(run_id, seed, transactions, start_date, end_date, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, int64(run.Seed), run.Transactions, run.StartDate, run.EndDate, run.Currency,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	ccStmt, err := tx.Prepare(`INSERT INTO dim_costcenter
		(cost_center_id, cost_center_name, department, region, manager)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = ccStmt.Close() }()
	for _, cc := range ds.CostCenters {
		if _, err := ccStmt.Exec(cc.ID, cc.Name, cc.Department, cc.Region, cc.Manager); err != nil {
			return fmt.Errorf("inserting cost center %s: %w", cc.ID, err)
		}
	}

	accStmt, err := tx.Prepare(`INSERT INTO dim_account
		(account_id, account_name, pl_level_1, pl_level_2, pl_level_3, sort_pl1)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = accStmt.Close() }()
	for _, a := range ds.Accounts {
		if _, err := accStmt.Exec(a.ID, a.Name, string(a.PLLevel1), a.PLLevel2, a.PLLevel3, a.SortPL1()); err != nil {
			return fmt.Errorf("inserting account %s: %w", a.ID, err)
		}
	}

	glStmt, err := tx.Prepare(`INSERT INTO fact_gl
		(txn_id, txn_date, amount, currency, account_id, cost_center_id,
		 country, vendor_customer, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = glStmt.Close() }()
	for _, t := range ds.Transactions {
		_, err := glStmt.Exec(t.ID, t.Date.Format(model.DateLayout), t.Amount, t.Currency,
			t.AccountID, t.CostCenterID, t.Country, t.VendorCustomer, t.Description)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	budgetStmt, err := tx.Prepare(`INSERT INTO fact_budget_monthly
		(month_start, account_id, cost_center_id, budget_amount)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = budgetStmt.Close() }()
	for _, b := range ds.Budget {
		_, err := budgetStmt.Exec(b.MonthStart.Format(model.DateLayout), b.AccountID, b.CostCenterID, b.Amount)
		if err != nil {
			return fmt.Errorf("inserting budget line: %w", err)
		}
	}

	return tx.Commit()
}

// LastRun returns the recorded run, or false if the database is empty.
func (s *DB) LastRun() (RunInfo, bool, error) {
	var (
		run     RunInfo
		seed    int64
		created string
	)
	err := s.db.QueryRow(`SELECT run_id, seed, transactions, start_date, end_date, currency, created_at
		FROM runs ORDER BY created_at DESC LIMIT 1`).
		Scan(&run.ID, &seed, &run.Transactions, &run.StartDate, &run.EndDate, &run.Currency, &created)
	if err == sql.ErrNoRows {
		return RunInfo{}, false, nil
	}
	if err != nil {
		return RunInfo{}, false, err
	}
	run.Seed = uint64(seed)
	run.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return run, true, nil
}

// TableCounts returns the row count of each dataset table.
func (s *DB) TableCounts() (map[string]int, error) {
	counts := make(map[string]int, 4)
	for _, table := range []string{model.TableGL, model.TableBudget, model.TableAccount, model.TableCostCenter} {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// CategoryTotals sums fact_gl amounts per top-level P&L category.
func (s *DB) CategoryTotals() (map[model.PLCategory]float64, error) {
	rows, err := s.db.Query(`SELECT a.pl_level_1, SUM(g.amount)
		FROM fact_gl g JOIN dim_account a ON a.account_id = g.account_id
		GROUP BY a.pl_level_1`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[model.PLCategory]float64)
	for rows.Next() {
		var cat string
		var sum float64
		if err := rows.Scan(&cat, &sum); err != nil {
			return nil, err
		}
		totals[model.PLCategory(cat)] = sum
	}
	return totals, rows.Err()
}
