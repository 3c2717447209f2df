package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func smallConfig(n int) config.Config {
	cfg := config.DefaultConfig()
	cfg.Generate.Transactions = n
	return cfg
}

func fixture(t *testing.T) *model.Dataset {
	t.Helper()
	accounts := []model.Account{
		{ID: "A410100", Name: "Product revenue", PLLevel1: model.Revenue},
		{ID: "A510100", Name: "Materials", PLLevel1: model.COGS},
		{ID: "A610100", Name: "Salaries", PLLevel1: model.OPEX},
	}
	ccs := []model.CostCenter{
		{ID: "CC100", Department: "Sales"},
		{ID: "CC101", Department: "R&D"},
	}
	txns := []model.Transaction{
		{ID: "TX000001", Date: day(t, "2024-01-05"), Amount: 100, AccountID: "A410100", CostCenterID: "CC100", Description: "Invoice"},
		{ID: "TX000002", Date: day(t, "2024-01-20"), Amount: 50, AccountID: "A410100", CostCenterID: "CC100", Description: "Invoice"},
		{ID: "TX000003", Date: day(t, "2024-01-21"), Amount: -40, AccountID: "A510100", CostCenterID: "CC101", Description: "Expense"},
		{ID: "TX000004", Date: day(t, "2024-02-01"), Amount: -30, AccountID: "A610100", CostCenterID: "CC101", Description: "Expense"},
	}
	ds := &model.Dataset{CostCenters: ccs, Accounts: accounts, Transactions: txns}
	ds.Budget = AggregateBudget(txns, accounts, config.DefaultBudget)
	return ds
}

func TestAggregateBudget_GroupsAndScales(t *testing.T) {
	ds := fixture(t)

	if len(ds.Budget) != 3 {
		t.Fatalf("budget lines = %d, want 3", len(ds.Budget))
	}

	want := []struct {
		month, account, cc string
		amount             float64
	}{
		{"2024-01-01", "A410100", "CC100", 154.5}, // 150 * 1.03
		{"2024-01-01", "A510100", "CC101", -39.2}, // -40 * 0.98
		{"2024-02-01", "A610100", "CC101", -29.4}, // -30 * 0.98
	}
	for i, w := range want {
		got := ds.Budget[i]
		if got.MonthStart.Format(model.DateLayout) != w.month || got.AccountID != w.account || got.CostCenterID != w.cc {
			t.Errorf("line %d key = %s/%s/%s, want %s/%s/%s", i,
				got.MonthStart.Format(model.DateLayout), got.AccountID, got.CostCenterID,
				w.month, w.account, w.cc)
		}
		if math.Abs(got.Amount-w.amount) > 1e-9 {
			t.Errorf("line %d amount = %v, want %v", i, got.Amount, w.amount)
		}
	}
}

func TestAggregateBudget_UnknownAccountUsesSign(t *testing.T) {
	txns := []model.Transaction{
		{Date: day(t, "2024-03-02"), Amount: -100, AccountID: "A999900", CostCenterID: "CC100"},
	}
	lines := AggregateBudget(txns, nil, config.DefaultBudget)
	if len(lines) != 1 || lines[0].Amount != -98 {
		t.Fatalf("lines = %+v, want one line of -98", lines)
	}
}

func TestGenerate_Invariants(t *testing.T) {
	ds, err := Generate(smallConfig(5000), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	v := Verify(ds, Expectations{Transactions: 5000, CostCenters: 45, Accounts: 13, Budget: config.DefaultBudget})
	for _, violation := range v {
		t.Error(violation)
	}

	actual := ActualKeys(ds.Transactions)
	if len(ds.Budget) != len(actual) {
		t.Errorf("budget lines = %d, actual cells = %d", len(ds.Budget), len(actual))
	}
}

func TestGenerate_RejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig(10)
	cfg.Mix.OPEX = 0.9
	if _, err := Generate(cfg, nil); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGenerate_ZeroTransactions(t *testing.T) {
	ds, err := Generate(smallConfig(0), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(ds.Transactions) != 0 || len(ds.Budget) != 0 {
		t.Errorf("got %d txns, %d budget lines, want 0/0", len(ds.Transactions), len(ds.Budget))
	}
	if len(ds.CostCenters) != 45 || len(ds.Accounts) != 13 {
		t.Errorf("dimensions = %d/%d, want 45/13", len(ds.CostCenters), len(ds.Accounts))
	}
}

func TestVerify_DetectsViolations(t *testing.T) {
	ds := fixture(t)
	ds.Transactions[0].Amount = -1
	ds.Transactions[2].AccountID = "A000000"
	ds.Transactions[3].CostCenterID = "CC999"
	ds.Budget = append(ds.Budget, model.BudgetLine{
		BudgetKey: model.BudgetKey{MonthStart: day(t, "2025-01-01"), AccountID: "A410100", CostCenterID: "CC100"},
	})

	rules := make(map[string]int)
	for _, v := range Verify(ds, Expectations{Transactions: 5}) {
		rules[v.Rule]++
	}

	for _, want := range []string{"amount-sign", "account-ref", "cost-center-ref", "budget-subset", "row-count"} {
		if rules[want] == 0 {
			t.Errorf("expected a %s violation, got %v", want, rules)
		}
	}
}

func TestVerify_BudgetAmount(t *testing.T) {
	ds := fixture(t)
	exp := Expectations{Budget: config.DefaultBudget}
	if v := Verify(ds, exp); len(v) != 0 {
		t.Fatalf("fixture has violations: %v", v)
	}

	ds.Budget[0].Amount += 1
	v := Verify(ds, exp)
	if len(v) != 1 || v[0].Rule != "budget-amount" {
		t.Fatalf("violations = %v, want one budget-amount", v)
	}

	if v := Verify(ds, Expectations{}); len(v) != 0 {
		t.Errorf("budget amounts checked without factors: %v", v)
	}
}

func TestVerifyStore(t *testing.T) {
	ds := fixture(t)
	snap := StoreSnapshot{
		Counts: map[string]int{
			model.TableGL:         4,
			model.TableBudget:     len(ds.Budget),
			model.TableAccount:    3,
			model.TableCostCenter: 2,
		},
		Totals: map[model.PLCategory]float64{
			model.Revenue: 150,
			model.COGS:    -40,
			model.OPEX:    -30,
		},
	}
	if v := VerifyStore(ds, snap); len(v) != 0 {
		t.Fatalf("matching snapshot has violations: %v", v)
	}

	snap.Counts[model.TableGL] = 3
	snap.Totals[model.OPEX] = -31
	rules := make(map[string]int)
	for _, v := range VerifyStore(ds, snap) {
		rules[v.Rule]++
	}
	if rules["sqlite-count"] != 1 || rules["sqlite-total"] != 1 {
		t.Errorf("rules = %v, want one sqlite-count and one sqlite-total", rules)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(t))

	if s.Transactions != 4 || s.Months != 2 {
		t.Errorf("Transactions/Months = %d/%d, want 4/2", s.Transactions, s.Months)
	}
	if s.Revenue != 150 || s.COGS != -40 || s.OPEX != -30 {
		t.Errorf("Revenue/COGS/OPEX = %v/%v/%v", s.Revenue, s.COGS, s.OPEX)
	}
	if s.GrossProfit != 110 || s.OperatingNet != 80 {
		t.Errorf("GrossProfit/OperatingNet = %v/%v, want 110/80", s.GrossProfit, s.OperatingNet)
	}
	if math.Abs(s.GrossMargin-110.0/150.0) > 1e-12 {
		t.Errorf("GrossMargin = %v", s.GrossMargin)
	}
	if math.Abs(s.BudgetNet-(154.5-39.2-29.4)) > 1e-9 {
		t.Errorf("BudgetNet = %v", s.BudgetNet)
	}
	if !s.FirstDate.Equal(day(t, "2024-01-05")) || !s.LastDate.Equal(day(t, "2024-02-01")) {
		t.Errorf("date range = %v..%v", s.FirstDate, s.LastDate)
	}
	if len(s.Categories) != 3 || s.Categories[0].Category != model.Revenue || s.Categories[0].Transactions != 2 {
		t.Errorf("Categories = %+v", s.Categories)
	}
}

func TestAggregateMonths(t *testing.T) {
	months := AggregateMonths(fixture(t))
	if len(months) != 2 {
		t.Fatalf("months = %d, want 2", len(months))
	}
	jan := months[0]
	if jan.Revenue != 150 || jan.Costs != -40 || jan.Net != 110 {
		t.Errorf("January = %+v", jan)
	}
	if math.Abs(jan.Variance-(110-(154.5-39.2))) > 1e-9 {
		t.Errorf("January variance = %v", jan.Variance)
	}
	if !months[1].MonthStart.Equal(day(t, "2024-02-01")) {
		t.Errorf("second month = %v", months[1].MonthStart)
	}
}

func TestAggregateAccounts_ShareWithinCategory(t *testing.T) {
	stats := AggregateAccounts(fixture(t))
	if len(stats) != 3 {
		t.Fatalf("len = %d, want 3", len(stats))
	}
	for _, s := range stats {
		if s.SharePercent != 100 {
			t.Errorf("%s share = %v, want 100 (only account in category)", s.Account.ID, s.SharePercent)
		}
	}
	if stats[0].Transactions != 2 || stats[0].Actual != 150 {
		t.Errorf("revenue account stats = %+v", stats[0])
	}
}

func TestAggregateCostCenters_SortedByNet(t *testing.T) {
	stats := AggregateCostCenters(fixture(t))
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].CostCenter.ID != "CC100" || stats[0].Net != 150 {
		t.Errorf("top = %+v", stats[0])
	}
	if stats[1].Net != -70 {
		t.Errorf("second net = %v, want -70", stats[1].Net)
	}
}

func TestFilterByDepartment(t *testing.T) {
	ds := FilterByDepartment(fixture(t), "r&d")
	if len(ds.CostCenters) != 1 || ds.CostCenters[0].ID != "CC101" {
		t.Fatalf("cost centers = %+v", ds.CostCenters)
	}
	if len(ds.Transactions) != 2 || len(ds.Budget) != 2 {
		t.Errorf("txns/budget = %d/%d, want 2/2", len(ds.Transactions), len(ds.Budget))
	}

	all := fixture(t)
	if FilterByDepartment(all, "") != all {
		t.Error("empty filter should return the dataset unchanged")
	}
}
