package dateutil

import "time"

// Date truncates t to midnight of its calendar day, keeping the location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LogicalDate maps a wall-clock instant to the logical day it belongs to. A
// logical day rolls over at resetHour instead of midnight, so anything before
// resetHour still counts as the previous day.
func LogicalDate(t time.Time, resetHour int) time.Time {
	if t.Hour() < resetHour {
		t = t.AddDate(0, 0, -1)
	}

	return Date(t)
}

// NextReset returns the first logical-day boundary strictly after t.
func NextReset(t time.Time, resetHour int) time.Time {
	reset := time.Date(t.Year(), t.Month(), t.Day(), resetHour, 0, 0, 0, t.Location())
	if !reset.After(t) {
		reset = reset.AddDate(0, 0, 1)
	}

	return reset
}

// IsSameDay reports whether two instants fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return Date(a).Equal(Date(b))
}

// IsNextDay reports whether next falls on the calendar day right after prev.
func IsNextDay(prev, next time.Time) bool {
	return Date(prev).AddDate(0, 0, 1).Equal(Date(next))
}
