package timesheet_test

import (
	"testing"
	"time"

	"hourbook/timesheet"
)

func TestIsWorkday(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{tuesday, true},
		{tuesday.AddDate(0, 0, 3), true}, // Friday
		{saturday, false},
		{sunday, false},
		{sunday.AddDate(0, 0, 1), true}, // Monday
	}
	for _, tt := range tests {
		if got := timesheet.IsWorkday(tt.date); got != tt.want {
			t.Errorf("IsWorkday(%s) = %v, want %v", tt.date.Format(timesheet.DateLayout), got, tt.want)
		}
	}
}

func TestDateOfKeepsLocalCalendarDay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*3600)
	late := time.Date(2026, 3, 10, 23, 30, 0, 0, saoPaulo)
	got := timesheet.DateOf(late)
	if !got.Equal(tuesday) {
		t.Errorf("DateOf = %v, want %v", got, tuesday)
	}
}

func TestParseDate(t *testing.T) {
	got, err := timesheet.ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(tuesday) {
		t.Errorf("ParseDate = %v, want %v", got, tuesday)
	}
	if _, err := timesheet.ParseDate("10/03/2026"); err == nil {
		t.Error("ParseDate: expected error for non ISO date")
	}
}

func TestMonthRange(t *testing.T) {
	first, last := timesheet.MonthRange(2028, time.February)
	if first.Day() != 1 || last.Day() != 29 {
		t.Errorf("MonthRange(2028-02) = %v..%v, want day 1..29", first, last)
	}
}

func TestWeekStartAndLabel(t *testing.T) {
	// 2026-02-27 is a Friday in week 9.
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday := timesheet.WeekStart(fri)
	if want := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC); !monday.Equal(want) {
		t.Errorf("WeekStart = %v, want %v", monday, want)
	}
	if got := timesheet.WeekStart(sunday); !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("WeekStart(sunday) = %v, want 2026-03-09", got)
	}
	if got := timesheet.ISOWeekLabel(fri); got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestInRangeIsInclusive(t *testing.T) {
	start, end := tuesday, tuesday.AddDate(0, 0, 2)
	if !timesheet.InRange(start, start, end) || !timesheet.InRange(end.Add(15*time.Hour), start, end) {
		t.Error("InRange: range bounds must be inclusive")
	}
	if timesheet.InRange(end.AddDate(0, 0, 1), start, end) {
		t.Error("InRange: day after end must be excluded")
	}
}

func TestWorkdaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"single workday", tuesday, tuesday, 1},
		{"weekend only", saturday, sunday, 0},
		{"tuesday to next tuesday", tuesday, tuesday.AddDate(0, 0, 7), 6},
		{"reversed", tuesday, tuesday.AddDate(0, 0, -1), 0},
	}
	for _, tt := range tests {
		if got := timesheet.WorkdaysBetween(tt.start, tt.end); got != tt.want {
			t.Errorf("%s: WorkdaysBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}
