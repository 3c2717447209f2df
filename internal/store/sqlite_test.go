package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/finmock/internal/model"
)

func tinyDataset() *model.Dataset {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.Dataset{
		CostCenters: []model.CostCenter{
			{ID: "CC100", Name: "CostCenter 01", Department: "Sales", Region: "North", Manager: "Manager_00"},
		},
		Accounts: []model.Account{
			{ID: "A410100", Name: "Product revenue", PLLevel1: model.Revenue, PLLevel2: "Revenue Streams", PLLevel3: "Product revenue"},
			{ID: "A610100", Name: "Salaries", PLLevel1: model.OPEX, PLLevel2: "Operating Expenses", PLLevel3: "Salaries"},
		},
		Transactions: []model.Transaction{
			{ID: "TX000001", Date: jan.AddDate(0, 0, 4), Amount: 1000, Currency: "EUR", AccountID: "A410100", CostCenterID: "CC100", Country: "AT", VendorCustomer: "Customer_001", Description: "Invoice"},
			{ID: "TX000002", Date: jan.AddDate(0, 0, 9), Amount: -250.5, Currency: "EUR", AccountID: "A610100", CostCenterID: "CC100", Country: "DE", VendorCustomer: "Vendor_001", Description: "Expense"},
		},
		Budget: []model.BudgetLine{
			{BudgetKey: model.BudgetKey{MonthStart: jan, AccountID: "A410100", CostCenterID: "CC100"}, Amount: 1030},
			{BudgetKey: model.BudgetKey{MonthStart: jan, AccountID: "A610100", CostCenterID: "CC100"}, Amount: -245.49},
		},
	}
}

func TestSaveDataset(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sub", "finmock.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, ok, err := db.LastRun(); err != nil || ok {
		t.Fatalf("LastRun on empty db = ok %v, err %v", ok, err)
	}

	run := RunInfo{Seed: 42, Transactions: 2, StartDate: "2024-01-01", EndDate: "2024-01-31", Currency: "EUR"}
	if err := db.SaveDataset(tinyDataset(), run); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	counts, err := db.TableCounts()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"fact_gl": 2, "fact_budget_monthly": 2, "dim_account": 2, "dim_costcenter": 1}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("%s rows = %d, want %d", table, counts[table], n)
		}
	}

	totals, err := db.CategoryTotals()
	if err != nil {
		t.Fatal(err)
	}
	if totals[model.Revenue] != 1000 || math.Abs(totals[model.OPEX]+250.5) > 1e-9 {
		t.Errorf("totals = %v", totals)
	}

	got, ok, err := db.LastRun()
	if err != nil || !ok {
		t.Fatalf("LastRun = ok %v, err %v", ok, err)
	}
	if got.ID == "" || got.Seed != 42 || got.Currency != "EUR" {
		t.Errorf("run = %+v", got)
	}
}

func TestSaveDataset_ReplacesPreviousRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "finmock.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ds := tinyDataset()
	if err := db.SaveDataset(ds, RunInfo{ID: "first", Seed: 1}); err != nil {
		t.Fatal(err)
	}
	ds.Transactions = ds.Transactions[:1]
	if err := db.SaveDataset(ds, RunInfo{ID: "second", Seed: 2}); err != nil {
		t.Fatal(err)
	}

	counts, err := db.TableCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["fact_gl"] != 1 {
		t.Errorf("fact_gl rows = %d, want 1 after replace", counts["fact_gl"])
	}
	run, _, err := db.LastRun()
	if err != nil {
		t.Fatal(err)
	}
	if run.ID != "second" {
		t.Errorf("run id = %q, want second", run.ID)
	}
}

func TestSaveDataset_ForeignKeyViolationRollsBack(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "finmock.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ds := tinyDataset()
	ds.Transactions[0].AccountID = "A000000"
	if err := db.SaveDataset(ds, RunInfo{}); err == nil {
		t.Fatal("expected foreign key error")
	}

	counts, err := db.TableCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["dim_costcenter"] != 0 {
		t.Errorf("dim_costcenter rows = %d, want 0 after rollback", counts["dim_costcenter"])
	}
}

func TestNewRunID_Unique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Fatal("run ids collided")
	}
}
