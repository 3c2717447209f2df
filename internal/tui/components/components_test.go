package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/finmock/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Errorf("widths %v sum to %d, want 100", widths, sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Errorf("widths = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestMetricCardRow_Width(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Revenue", Value: "1.2M"},
		{Label: "Costs", Value: "-900K", Delta: "-2.0K vs budget", Tone: ToneNegative},
	}, 60)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestCardRow_HeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	joined := CardRow([]string{tallCard, shortCard})
	if got, want := lipgloss.Height(joined), lipgloss.Height(tallCard); got != want {
		t.Errorf("joined height = %d, want %d", got, want)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('m'); got != 1 {
		t.Errorf("TabIdxByKey('m') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestTabVisualWidth(t *testing.T) {
	tab := Tab{Name: "Settings", Key: 'x', KeyPos: -1}
	if got := TabVisualWidth(tab, true); got != 10 {
		t.Errorf("active width = %d, want 10", got)
	}
	if got := TabVisualWidth(tab, false); got != 13 {
		t.Errorf("inactive width = %d, want 13", got)
	}
}

func TestComparisonChart(t *testing.T) {
	th := theme.FlexokiDark
	series := []Series{
		{Name: "Actual", Values: []float64{100, 250, -300}, Color: th.Revenue},
		{Name: "Budget", Values: []float64{103, 240, -290}, Color: th.Budget},
	}
	out := ComparisonChart(series, []string{"Jan", "Feb", "Mar"}, 60, 8)

	if !strings.Contains(out, "Actual") || !strings.Contains(out, "Budget") {
		t.Error("legend missing")
	}
	if !strings.Contains(out, "Jan") {
		t.Error("x-axis labels missing")
	}

	// Narrow charts degrade to a single-line sparkline.
	if got := ComparisonChart(series, nil, 10, 8); strings.Contains(got, "\n") {
		t.Errorf("narrow chart should be one line, got %q", got)
	}
	if ComparisonChart(nil, nil, 60, 8) != "" {
		t.Error("empty chart should render empty")
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max, want float64
	}{
		{0, 1},
		{100, 20},
		{1_000_000, 200_000},
		{40, 5},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2_000_000, "2M"},
		{1_500, "1.5k"},
		{40, "40"},
		{0.5, "0.50"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestShareBar_Clamps(t *testing.T) {
	out := ShareBar("Product revenue", 1.7, theme.FlexokiDark.Revenue, 12, 10)
	if !strings.Contains(out, "100.0%") {
		t.Errorf("share above 1 should clamp to 100%%: %q", out)
	}
	if !strings.Contains(out, "Product rev…") {
		t.Errorf("label should be truncated to width: %q", out)
	}
}
