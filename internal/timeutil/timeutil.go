// Package timeutil centralizes due-date comparisons and timezone handling.
// All timestamps are stored and compared in UTC; India Standard Time is used
// only when formatting values for display.
package timeutil

import "time"

// IST is the display timezone for due dates (UTC+5:30).
var IST = time.FixedZone("IST", 5*3600+30*60)

const displayLayout = "02 Jan 2006, 03:04 PM"

// IsOverdue reports whether now is strictly past the due date.
// This is the only overdue comparison in the codebase.
func IsOverdue(now, dueDate time.Time) bool {
	return now.UTC().After(dueDate.UTC())
}

// FormatIST renders a timestamp in India Standard Time for presentation.
func FormatIST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(IST).Format(displayLayout)
}
