package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	okStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	errStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table is a bordered report table. A row of just "---" draws a rule; rows
// below the last rule are totals and render bold. Numeric columns are
// right-aligned and negative amounts render red.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols is the number of leading text columns. Zero means one.
	LeftCols int
}

const ruleRow = "---"

func isRule(row []string) bool {
	return len(row) == 1 && row[0] == ruleRow
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders t with a header row, rules, and aligned cells.
func RenderTable(t Table) string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return ""
	}
	left := max(t.LeftCols, 1)

	lastRule := -1
	for i, row := range t.Rows {
		if isRule(row) {
			lastRule = i
		}
	}

	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "  %s\n", headerStyle.Render(t.Title))
	}
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(tableRow(widths, t.Headers, len(widths), func(int, string) lipgloss.Style {
			return headerStyle
		}))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for i, row := range t.Rows {
		if isRule(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		total := lastRule >= 0 && i > lastRule
		b.WriteString(tableRow(widths, row, left, func(col int, cell string) lipgloss.Style {
			return cellStyle(col >= left, cell, total)
		}))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 {
		for _, row := range t.Rows {
			if !isRule(row) {
				n = max(n, len(row))
			}
		}
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isRule(row) {
			continue
		}
		for i, cell := range row {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

// tableRow pads each cell to its column; columns before leftCols are
// left-aligned, the rest right-aligned.
func tableRow(widths []int, cells []string, leftCols int, style func(int, string) lipgloss.Style) string {
	sep := dimStyle.Render("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(w-lipgloss.Width(cell), 0))
		text := cell + pad
		if i >= leftCols {
			text = pad + cell
		}
		b.WriteString(style(i, cell).Render(" " + text + " "))
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

func cellStyle(numeric bool, cell string, total bool) lipgloss.Style {
	style := valueStyle
	if numeric && strings.HasPrefix(cell, "-") {
		style = errStyle
	}
	if total {
		style = style.Bold(true)
	}
	return style
}

// RenderSparkline generates a unicode block sparkline from a series of
// values, scaled between the series minimum and maximum.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

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

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderStatus renders a pass/fail line such as "✓ 4 tables verified".
func RenderStatus(ok bool, msg string) string {
	if ok {
		return okStyle.Render("✓ ") + valueStyle.Render(msg)
	}
	return errStyle.Render("✗ ") + valueStyle.Render(msg)
}

// RenderMuted renders secondary text.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}
