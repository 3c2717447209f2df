package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/pipeline"
	"github.com/theirongolddev/finmock/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func loadedApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Generate.Transactions = 500
	ds, err := pipeline.Generate(cfg, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := NewApp(cfg, "")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Dataset: ds, LoadTime: time.Second})
	return m.(App)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
	}
	if got := (App{}).tabAtX(1000); got != -1 {
		t.Errorf("tabAtX(1000) = %d, want -1", got)
	}
}

func TestDataLoaded_Recomputes(t *testing.T) {
	a := loadedApp(t)
	if !a.loaded || a.summary.Transactions != 500 {
		t.Fatalf("summary transactions = %d, want 500", a.summary.Transactions)
	}
	if len(a.departments) == 0 {
		t.Fatal("departments not derived from cost centers")
	}
	if len(a.costCenters) != 45 {
		t.Errorf("cost centers = %d, want 45", len(a.costCenters))
	}
}

func TestKeys_TabsAndDepartmentFilter(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(key("m"))
	a = m.(App)
	if a.activeTab != tabMonthly {
		t.Errorf("activeTab = %d, want %d", a.activeTab, tabMonthly)
	}

	m, _ = a.Update(key("d"))
	a = m.(App)
	if a.department() != a.departments[0] {
		t.Fatalf("department = %q, want %q", a.department(), a.departments[0])
	}
	if a.summary.Transactions >= 500 {
		t.Errorf("filtered transactions = %d, want fewer than 500", a.summary.Transactions)
	}

	m, _ = a.Update(key("D"))
	a = m.(App)
	if a.department() != "" || a.summary.Transactions != 500 {
		t.Errorf("clear filter: department %q, transactions %d", a.department(), a.summary.Transactions)
	}
}

func TestCostCenterCursor_Clamps(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = tabCostCenters

	a.moveCursor(-5)
	if a.ccCursor != 0 {
		t.Errorf("cursor = %d, want 0", a.ccCursor)
	}
	a.moveCursor(1000)
	if a.ccCursor != len(a.costCenters)-1 {
		t.Errorf("cursor = %d, want %d", a.ccCursor, len(a.costCenters)-1)
	}
	if a.ccCursor < a.ccOffset || a.ccCursor >= a.ccOffset+a.costCenterRows() {
		t.Errorf("cursor %d outside window [%d, %d)", a.ccCursor, a.ccOffset, a.ccOffset+a.costCenterRows())
	}
}

func TestView_EveryTabRenders(t *testing.T) {
	a := loadedApp(t)
	for i, tab := range components.Tabs {
		a.activeTab = i
		out := a.View()
		if got := strings.Count(out, "\n") + 1; got != a.height {
			t.Errorf("%s: %d lines, want %d", tab.Name, got, a.height)
		}
	}
}

func TestView_LoadError(t *testing.T) {
	a := NewApp(config.DefaultConfig(), "missing")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Err: errors.New("missing tables: fact_gl.csv")})
	a = m.(App)

	if !strings.Contains(a.View(), "missing tables") {
		t.Error("error view does not show the load error")
	}
	if a.Err() == nil {
		t.Error("Err() = nil after failed load")
	}
}

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	v.Transactions = " 1000 "
	v.Seed = "7"
	v.Currency = "usd"
	v.Publish = true
	v.Bucket = "finance-demo"

	if err := ApplySetup(&cfg, v); err != nil {
		t.Fatalf("ApplySetup: %v", err)
	}
	if cfg.Generate.Transactions != 1000 || cfg.Generate.Seed != 7 || cfg.Generate.Currency != "USD" {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if cfg.GCS.Bucket != "finance-demo" {
		t.Errorf("bucket = %q", cfg.GCS.Bucket)
	}

	v.EndDate = "2023-01-01"
	if err := ApplySetup(&cfg, v); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("end before start: err = %v, want ErrInvalidConfig", err)
	}

	v.Seed = "-1"
	if err := ApplySetup(&cfg, v); err == nil {
		t.Error("negative seed accepted")
	}
}

func TestFieldValidators(t *testing.T) {
	if nonNegativeInt("12") != nil || nonNegativeInt("-1") == nil || nonNegativeInt("x") == nil {
		t.Error("nonNegativeInt misclassified input")
	}
	if validDate("2024-02-29") != nil || validDate("2024-13-01") == nil {
		t.Error("validDate misclassified input")
	}
	if required("dir")("  ") == nil {
		t.Error("required accepted blank")
	}
}
