package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v        float64
		currency string
		want     string
	}{
		{0, "", "0.00"},
		{12.5, "EUR", "12.50 EUR"},
		{1234567.891, "EUR", "1,234,567.89 EUR"},
		{-1234.5, "", "-1,234.50"},
		{-0.001, "", "0.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.v, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.v, tt.currency, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{999, "999"},
		{1234, "1.2K"},
		{-1_234_567, "-1.2M"},
		{2_500_000_000, "2.5B"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.v); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{220000, "220,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatVariance(t *testing.T) {
	if got := FormatVariance(1500, 1000); got != "+500" {
		t.Errorf("FormatVariance(1500, 1000) = %q, want +500", got)
	}
	if got := FormatVariance(1000, 3000); got != "-2.0K" {
		t.Errorf("FormatVariance(1000, 3000) = %q, want -2.0K", got)
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(1500); got != "1.5 kB" {
		t.Errorf("FormatBytes(1500) = %q, want 1.5 kB", got)
	}
	if got := FormatBytes(-1); got != "0 B" {
		t.Errorf("FormatBytes(-1) = %q, want 0 B", got)
	}
}

func TestFormatMonthAndDuration(t *testing.T) {
	if got := FormatMonth(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); got != "Mar 2025" {
		t.Errorf("FormatMonth = %q", got)
	}
	if got := FormatDuration(950 * time.Millisecond); got != "950ms" {
		t.Errorf("FormatDuration(950ms) = %q", got)
	}
	if got := FormatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Errorf("FormatDuration(1.5s) = %q", got)
	}
	if got := FormatDuration(125 * time.Second); got != "2m 5s" {
		t.Errorf("FormatDuration(125s) = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{-10, 0, 10})
	if got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render empty")
	}
}

func TestRenderTable_Shape(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"file", "rows"},
		Rows:    [][]string{{"fact_gl.csv", "220,000"}, {"---"}, {"total", "1"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, separator, 2 rows, 1 separator row, bottom
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "fact_gl.csv") || !strings.Contains(out, "220,000") {
		t.Errorf("table missing cells:\n%s", out)
	}
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"account", "cc", "amount"},
		LeftCols: 2,
		Rows: [][]string{
			{"A410100", "CC100", "1,250.00"},
			{"A610100", "CC1", "-7.50"},
			{ruleRow},
			{"Net", "", "1,242.50"},
		},
	})
	for _, want := range []string{
		"│ A410100 │ CC100 │ 1,250.00 │",
		"│ A610100 │ CC1   │    -7.50 │",
		"│ Net     │       │ 1,242.50 │",
		"│ account │ cc    │ amount   │",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing line %q in:\n%s", want, out)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("empty table rendered %q", out)
	}
}
