// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCompact formats an amount with human-readable suffixes.
// e.g., 1234 -> "1.2K", -1234567 -> "-1.2M", 1234567890 -> "1.2B"
func FormatCompact(v float64) string {
	abs := math.Abs(v)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

// FormatMoney formats an amount with thousands separators, two decimals and
// an optional currency code suffix.
// e.g., (-1234567.891, "EUR") -> "-1,234,567.89 EUR"
func FormatMoney(v float64, currency string) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	s := FormatNumber(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if v < 0 && cents != 0 {
		s = "-" + s
	}
	if currency != "" {
		s += " " + currency
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatVariance formats actual minus budget with an explicit sign.
func FormatVariance(actual, budget float64) string {
	delta := actual - budget
	if delta >= 0 {
		return "+" + FormatCompact(delta)
	}
	return "-" + FormatCompact(-delta)
}

// FormatBytes formats a file size, e.g. 15728640 -> "16 MB".
func FormatBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// FormatMonth formats a month start as "Jan 2024".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatDuration formats an elapsed time for summaries.
// e.g., 1.234s -> "1.2s", 950ms -> "950ms"
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
