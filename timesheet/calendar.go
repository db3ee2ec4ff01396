package timesheet

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t and returns its calendar day as UTC midnight.
// The day is read in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timesheet: invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsWorkday reports whether date falls on Monday through Friday.
func IsWorkday(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// InRange reports whether date lies within [start, end], comparing calendar days.
func InRange(date, start, end time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(start)) && !d.After(DateOf(end))
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// WeekStart returns the Monday of the ISO week containing date.
func WeekStart(date time.Time) time.Time {
	d := DateOf(date)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel returns a label like "2026-03".
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// WorkdaysBetween counts the workdays in [start, end]; zero when end is before start.
func WorkdaysBetween(start, end time.Time) int {
	n := 0
	for d := DateOf(start); !d.After(DateOf(end)); d = d.AddDate(0, 0, 1) {
		if IsWorkday(d) {
			n++
		}
	}
	return n
}
