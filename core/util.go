package core

import (
	"strings"
	"time"
)

// DateLayout is how dates are written to the backing tables.
const DateLayout = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate reads a stored date. Timestamps written by spreadsheet tools ("2006-01-02 15:04:05") are accepted too.
func ParseDate(s string) (time.Time, error) {
	s = CleanString(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// FormatDate is the inverse of ParseDate; the zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Today truncates `now` to its calendar date (UTC midnight), so day differences are exact.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of calendar days from `from` to `to` (negative if `to` is in the past).
func DaysUntil(from, to time.Time) int {
	return int(Today(to).Sub(Today(from)).Hours() / 24)
}
