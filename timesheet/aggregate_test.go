package timesheet_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
	"hourbook/timesheet"
)

func sampleEntries() []models.Entry {
	return []models.Entry{
		projectEntry("u1", tuesday, "6", 1),
		projectEntry("u1", tuesday, "2", 2),
		projectEntry("u1", tuesday.AddDate(0, 0, 1), "8.5", 1),
		kindEntry("u1", tuesday.AddDate(0, 0, 2), "8", models.KindVacation),
		kindEntry("u1", tuesday.AddDate(0, 0, 3), "4", models.KindLeave),
		kindEntry("u1", tuesday.AddDate(0, 0, 3), "4", models.KindHourBank),
		projectEntry("u1", saturday, "3", 2),
		projectEntry("u1", tuesday.AddDate(0, 1, 0), "8", 1), // outside the range
	}
}

func TestAggregateRange(t *testing.T) {
	totals := timesheet.AggregateRange(sampleEntries(), tuesday, sunday)

	assertHours(t, "Total", totals.Total, "35.5")
	assertHours(t, "Workday", totals.Workday, "32.5")
	assertHours(t, "ByKind[project]", totals.ByKind[models.KindProject], "19.5")
	assertHours(t, "ByKind[vacation]", totals.ByKind[models.KindVacation], "8")
	assertHours(t, "ByKind[leave]", totals.ByKind[models.KindLeave], "4")
	assertHours(t, "ByKind[hour_bank]", totals.ByKind[models.KindHourBank], "4")
	assertHours(t, "ByProject[1]", totals.ByProject[1], "14.5")
	assertHours(t, "ByProject[2]", totals.ByProject[2], "5")
	if len(totals.ByProject) != 2 {
		t.Errorf("ByProject has %d projects, want 2", len(totals.ByProject))
	}
}

func TestAggregateRangeIdentities(t *testing.T) {
	totals := timesheet.AggregateRange(sampleEntries(), tuesday, sunday)

	kindSum := decimal.Zero
	nonProject := decimal.Zero
	for kind, h := range totals.ByKind {
		kindSum = kindSum.Add(h)
		if kind != models.KindProject {
			nonProject = nonProject.Add(h)
		}
	}
	projectSum := decimal.Zero
	for _, h := range totals.ByProject {
		projectSum = projectSum.Add(h)
	}

	if !totals.Total.Equal(kindSum) {
		t.Errorf("Total %s != sum of kinds %s", totals.Total, kindSum)
	}
	if !totals.Total.Equal(projectSum.Add(nonProject)) {
		t.Errorf("Total %s != projects %s + non-project kinds %s", totals.Total, projectSum, nonProject)
	}
}

func TestAggregateRangeIgnoresOrder(t *testing.T) {
	entries := sampleEntries()
	want := timesheet.AggregateRange(entries, tuesday, sunday)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Entry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := timesheet.AggregateRange(shuffled, tuesday, sunday)
		if !got.Total.Equal(want.Total) || !got.Workday.Equal(want.Workday) {
			t.Fatalf("shuffle %d: totals %s/%s, want %s/%s", i, got.Total, got.Workday, want.Total, want.Workday)
		}
		for id, h := range want.ByProject {
			if !got.ByProject[id].Equal(h) {
				t.Fatalf("shuffle %d: ByProject[%d] = %s, want %s", i, id, got.ByProject[id], h)
			}
		}
	}
}

func TestAggregateRangeHalfHoursDoNotDrift(t *testing.T) {
	entries := make([]models.Entry, 0, 100)
	for i := 0; i < 100; i++ {
		entries = append(entries, projectEntry("u1", tuesday, "0.5", 1))
	}
	tenths := make([]models.Entry, 0, 100)
	for i := 0; i < 100; i++ {
		tenths = append(tenths, kindEntry("u1", tuesday, "0.1", models.KindHourBank))
	}

	assertHours(t, "100 x 0.5", timesheet.AggregateRange(entries, tuesday, tuesday).Total, "50")
	assertHours(t, "100 x 0.1", timesheet.AggregateRange(tenths, tuesday, tuesday).Total, "10")
}

func TestAggregateRangeEndToEnd(t *testing.T) {
	day := []models.Entry{
		projectEntry("u1", tuesday, "6", 1),
		projectEntry("u1", tuesday, "2", 2),
	}
	today := tuesday.AddDate(0, 0, 1)

	totals := timesheet.AggregateRange(day, tuesday, tuesday)
	assertHours(t, "Total", totals.Total, "8")
	assertHours(t, "ByProject[A]", totals.ByProject[1], "6")
	assertHours(t, "ByProject[B]", totals.ByProject[2], "2")

	if got := timesheet.DayStatus(tuesday, day, today); got != timesheet.StatusComplete {
		t.Errorf("DayStatus = %q, want %q", got, timesheet.StatusComplete)
	}
	if err := timesheet.ValidateDayEntry(tuesday, day, today); err != nil {
		t.Errorf("ValidateDayEntry = %v, want nil", err)
	}
}

func TestMonthCalendar(t *testing.T) {
	today := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC) // Wednesday
	entries := []models.Entry{
		projectEntry("u1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "8", 1),
		projectEntry("u1", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), "5", 1),
		projectEntry("u1", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), "2", 1),
		projectEntry("u1", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), "8", 1),
	}

	days := timesheet.MonthCalendar(2026, time.March, entries, today)
	if len(days) != 31 {
		t.Fatalf("MonthCalendar returned %d days, want 31", len(days))
	}

	want := map[int]timesheet.Status{
		1:  timesheet.StatusWeekend,
		2:  timesheet.StatusComplete,
		3:  timesheet.StatusIncomplete,
		4:  timesheet.StatusPending,
		7:  timesheet.StatusWeekend,
		18: timesheet.StatusPending,
		19: timesheet.StatusFuture,
		20: timesheet.StatusFuture,
	}
	for day, status := range want {
		if got := days[day-1].Status; got != status {
			t.Errorf("March %d status = %q, want %q", day, got, status)
		}
	}
	if days[3].Entries == nil {
		t.Error("empty day should carry an empty entry list, not nil")
	}

	summary := timesheet.SummarizeDays(days)
	// Workdays 2..18: 13 of them; 2 is complete, 3 incomplete, 11 pending.
	if summary.Complete != 1 || summary.Incomplete != 1 || summary.Pending != 11 {
		t.Errorf("summary = %+v, want 1 complete, 1 incomplete, 11 pending", summary)
	}
	if summary.Weekend != 9 || summary.Future != 9 {
		t.Errorf("summary weekend/future = %d/%d, want 9/9", summary.Weekend, summary.Future)
	}
	assertHours(t, "Logged", summary.Logged, "23")
	assertHours(t, "MissingHours", summary.MissingHours, "91")
}

func TestWeeklyTotals(t *testing.T) {
	first, last := timesheet.MonthRange(2026, time.March)
	weeks := timesheet.WeeklyTotals(sampleEntries(), first, last)

	// March 2026 touches ISO weeks 9 through 14.
	if len(weeks) != 6 {
		t.Fatalf("WeeklyTotals returned %d weeks, want 6", len(weeks))
	}
	if weeks[0].Label != "2026-W09" || !weeks[0].Start.Equal(first) {
		t.Errorf("first week = %s from %v, want 2026-W09 from %v", weeks[0].Label, weeks[0].Start, first)
	}
	if weeks[5].Label != "2026-W14" || !weeks[5].End.Equal(last) {
		t.Errorf("last week = %s until %v, want 2026-W14 until %v", weeks[5].Label, weeks[5].End, last)
	}
	assertHours(t, "W11", weeks[2].Total, "35.5")
	assertHours(t, "W10", weeks[1].Total, "0")

	if got := timesheet.WeeklyTotals(nil, last, first); len(got) != 0 {
		t.Errorf("WeeklyTotals(reversed range) = %d weeks, want 0", len(got))
	}
}
