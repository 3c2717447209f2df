package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named, colored value series of a comparison chart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Sparkline renders a unicode sparkline scaled between the series extremes.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		buf.WriteRune(blocks[max(0, min(idx, len(blocks)-1))])
	}
	return style.Render(buf.String())
}

// ComparisonChart renders grouped vertical bars, one group per label with
// one bar per series. Values are drawn by magnitude. Too little room falls
// back to a sparkline of the first series.
func ComparisonChart(series []Series, labels []string, width, height int) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	n := len(series[0].Values)
	k := len(series)

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			maxVal = max(maxVal, math.Abs(v))
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: nice tick step, doubled until the interval count fits.
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	// Each group is k bars of barW plus one gap column.
	chartW := max(width-yLabelW-1, 5)
	groupW := chartW / n
	barW := min(max((groupW-1)/k, 1), 3)
	groupW = barW*k + 1
	axisLen := n * groupW

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	barStyles := make([]lipgloss.Style, k)
	for i, s := range series {
		barStyles[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := 0; i < n; i++ {
			for si, s := range series {
				v := 0.0
				if i < len(s.Values) {
					v = math.Abs(s.Values[i])
				}
				switch {
				case v >= rowTop:
					b.WriteString(barStyles[si].Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
					idx = max(1, min(idx, 8))
					b.WriteString(barStyles[si].Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(blank.Render(strings.Repeat(" ", barW)))
				}
			}
			b.WriteString(blank.Render(" "))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, groupW, axisLen)))
	}

	b.WriteString("\n")
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	for i, s := range series {
		if i > 0 {
			b.WriteString(blank.Render("  "))
		}
		b.WriteString(barStyles[i].Render("█ "))
		b.WriteString(axisStyle.Render(s.Name))
	}

	return b.String()
}

// xAxisLabels lays labels out under their groups, skipping any that would
// overlap the previous one.
func xAxisLabels(labels []string, groupW, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * groupW
		if pos <= lastEnd {
			continue
		}
		end := min(pos+len(lbl), axisLen)
		if end-pos < 3 {
			continue
		}
		copy(buf[pos:end], lbl[:end-pos])
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	unit := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e9:
		return unit(1e9, "B")
	case v >= 1e6:
		return unit(1e6, "M")
	case v >= 1e3:
		return unit(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
