package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Display layouts used across the board.
const (
	LayoutMonthDay     = "Jan 2"
	LayoutHoursMinutes = "15:04"
	LayoutDateTime     = "02/01/06 15:04"
)

// FormatMonthDay renders a date as "MAR 18".
func FormatMonthDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strings.ToUpper(t.UTC().Format(LayoutMonthDay))
}

// FormatTime renders the clock part, "10:30".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(LayoutHoursMinutes)
}

// FormatDateTime renders the edit-form layout, "18/03/19 10:30".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(LayoutDateTime)
}

// ParseDateTime parses the edit-form layout back into a UTC instant.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(LayoutDateTime, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want DD/MM/YY HH:MM", s)
	}
	return t.UTC(), nil
}

// FormatDuration renders a span as "30M", "2H 10M" or "1D 2H 30M",
// dropping leading zero units.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dD %dH %dM", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dH %dM", hours, minutes)
	default:
		return fmt.Sprintf("%dM", minutes)
	}
}

// FormatPrice renders a euro amount with thousands separators, "€ 1,200".
func FormatPrice(amount int) string {
	return "€ " + humanize.Comma(int64(amount))
}

// TruncateString shortens s to maxLen runes, appending "…" when cut.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 1 {
		return ""
	}
	return string(runes[:maxLen-1]) + "…"
}
