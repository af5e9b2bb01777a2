// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}

// IsFutureDate reports whether t falls on a calendar day after today.
func IsFutureDate(t time.Time) bool {
	return BeginningOfDay(t).After(BeginningOfDay(time.Now()))
}

// MonthRange returns the half-open interval [first of month, first of next month).
func MonthRange(month time.Month, year int) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// YearRange returns the half-open interval [Jan 1, Jan 1 of next year).
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(1, 0, 0)
}
