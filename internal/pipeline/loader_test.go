package pipeline

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/export"
	"github.com/theirongolddev/finmock/internal/model"
)

func TestLoad_RoundTripsWrittenDataset(t *testing.T) {
	ds, err := Generate(smallConfig(800), nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if _, err := export.WriteDataset(dir, ds); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	res, err := Load(dir, func(current, total int) {
		calls.Add(1)
		if total != 4 {
			t.Errorf("progress total = %d, want 4", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := calls.Load(); n != 4 {
		t.Errorf("progress calls = %d, want 4", n)
	}
	if res.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", res.ParseErrors)
	}

	got := res.Dataset
	if len(got.Transactions) != 800 || len(got.Budget) != len(ds.Budget) ||
		len(got.Accounts) != 13 || len(got.CostCenters) != 45 {
		t.Fatalf("row counts = %d/%d/%d/%d", len(got.Transactions), len(got.Budget), len(got.Accounts), len(got.CostCenters))
	}
	for i := range ds.Transactions {
		if got.Transactions[i] != ds.Transactions[i] {
			t.Fatalf("transaction %d differs after reload:\n%+v\n%+v", i, got.Transactions[i], ds.Transactions[i])
		}
	}

	if v := Verify(got, Expectations{Transactions: 800, CostCenters: 45, Accounts: 13, Budget: config.DefaultBudget}); len(v) != 0 {
		t.Errorf("reloaded dataset has violations: %v", v)
	}
}

func TestLoad_MissingTable(t *testing.T) {
	ds, err := Generate(smallConfig(10), nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if _, err := export.WriteDataset(dir, ds); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, model.FileBudget)); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir, nil); err == nil {
		t.Fatal("expected error for missing budget table")
	}
}
