package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/finmock/internal/model"
)

// writeTable creates a temp table file and returns a DiscoveredFile for it.
func writeTable(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Name: name, Path: path}
}

func TestParseFile_Transactions(t *testing.T) {
	df := writeTable(t, model.FileGL,
		strings.Join(model.HeaderGL, ","),
		"TX000001,2024-01-05,3301.25,EUR,A410100,CC100,AT,Customer_001,Invoice",
		"TX000002,2024-01-06,-120.10,EUR,A610200,CC101,DE,Vendor_003,Expense",
	)

	res := ParseFile(df)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Rows != 2 || len(res.Transactions) != 2 {
		t.Fatalf("Rows = %d, Transactions = %d, want 2", res.Rows, len(res.Transactions))
	}

	got := res.Transactions[1]
	if got.ID != "TX000002" || got.Amount != -120.10 || got.AccountID != "A610200" || got.Country != "DE" {
		t.Errorf("second row = %+v", got)
	}
	if got.Date.Format(model.DateLayout) != "2024-01-06" {
		t.Errorf("Date = %v", got.Date)
	}
}

func TestParseFile_MalformedRowsCounted(t *testing.T) {
	df := writeTable(t, model.FileBudget,
		strings.Join(model.HeaderBudget, ","),
		"2024-01-01,A410100,CC100,1030.00",
		"2024-13-01,A410100,CC100,1.00",
		"2024-02-01,A410100,CC100,abc",
		"2024-03-01,A410100",
		"2024-04-01,A410100,CC100,5.00",
	)

	res := ParseFile(df)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Rows != 2 {
		t.Errorf("Rows = %d, want 2", res.Rows)
	}
	if res.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", res.ParseErrors)
	}
}

func TestParseFile_HeaderMismatch(t *testing.T) {
	df := writeTable(t, model.FileAccount, "id,name")
	if res := ParseFile(df); res.Err == nil {
		t.Fatal("expected header error")
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, model.FileCostCenter)
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if res := ParseFile(DiscoveredFile{Name: model.FileCostCenter, Path: path}); res.Err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestParseFile_AccountsAndCostCenters(t *testing.T) {
	acc := ParseFile(writeTable(t, model.FileAccount,
		strings.Join(model.HeaderAccount, ","),
		"A610300,IT & Cloud,OPEX,Operating Expenses,IT & Cloud,3",
	))
	if acc.Err != nil || len(acc.Accounts) != 1 {
		t.Fatalf("accounts = %+v, err = %v", acc.Accounts, acc.Err)
	}
	if acc.Accounts[0].PLLevel1 != model.OPEX || acc.Accounts[0].Name != "IT & Cloud" {
		t.Errorf("account = %+v", acc.Accounts[0])
	}

	cc := ParseFile(writeTable(t, model.FileCostCenter,
		strings.Join(model.HeaderCostCenter, ","),
		"CC100,CostCenter 01,R&D,North,Manager_00",
	))
	if cc.Err != nil || len(cc.CostCenters) != 1 || cc.CostCenters[0].Department != "R&D" {
		t.Fatalf("cost centers = %+v, err = %v", cc.CostCenters, cc.Err)
	}
}

func TestParseFile_UnknownTable(t *testing.T) {
	df := writeTable(t, "other.csv", "a,b")
	if res := ParseFile(df); res.Err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{model.FileGL, model.FileAccount, "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 || files[0].Name != model.FileGL || files[1].Name != model.FileAccount {
		t.Fatalf("files = %+v", files)
	}
	if files[0].Size != 2 {
		t.Errorf("Size = %d, want 2", files[0].Size)
	}

	missing := MissingFiles(files)
	if len(missing) != 2 || missing[0] != model.FileBudget || missing[1] != model.FileCostCenter {
		t.Errorf("missing = %v", missing)
	}

	if _, err := ScanDir(filepath.Join(dir, "absent")); err == nil {
		t.Error("expected error for missing dir")
	}
}
