package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

// RangeTotals rolls up the entries of a date range.
type RangeTotals struct {
	Start     time.Time                            `json:"start"`
	End       time.Time                            `json:"end"`
	Total     decimal.Decimal                      `json:"total"`
	Workday   decimal.Decimal                      `json:"workday"`
	ByKind    map[models.EntryKind]decimal.Decimal `json:"by_kind"`
	ByProject map[uint]decimal.Decimal             `json:"by_project"`
}

// AggregateRange sums the entries dated within [start, end]. Entries outside the
// range are ignored. ByKind always carries every kind; ByProject only holds
// project entries, keyed by project id.
func AggregateRange(entries []models.Entry, start, end time.Time) RangeTotals {
	totals := RangeTotals{
		Start:     DateOf(start),
		End:       DateOf(end),
		Total:     decimal.Zero,
		Workday:   decimal.Zero,
		ByKind:    make(map[models.EntryKind]decimal.Decimal, len(models.EntryKinds)),
		ByProject: make(map[uint]decimal.Decimal),
	}
	for _, kind := range models.EntryKinds {
		totals.ByKind[kind] = decimal.Zero
	}

	for i := range entries {
		e := &entries[i]
		if !InRange(e.Date, start, end) {
			continue
		}
		totals.Total = totals.Total.Add(e.Hours)
		if IsWorkday(DateOf(e.Date)) {
			totals.Workday = totals.Workday.Add(e.Hours)
		}
		totals.ByKind[e.Kind] = totals.ByKind[e.Kind].Add(e.Hours)
		if e.Kind == models.KindProject && e.ProjectID != nil {
			totals.ByProject[*e.ProjectID] = totals.ByProject[*e.ProjectID].Add(e.Hours)
		}
	}
	return totals
}

// DaySummary is one cell of a monthly timesheet.
type DaySummary struct {
	Date    time.Time       `json:"date"`
	Workday bool            `json:"workday"`
	Total   decimal.Decimal `json:"total"`
	Status  Status          `json:"status"`
	Entries []models.Entry  `json:"entries"`
}

// MonthCalendar returns one summary per day of the month, in date order.
func MonthCalendar(year int, month time.Month, entries []models.Entry, today time.Time) []DaySummary {
	first, last := MonthRange(year, month)
	byDay := GroupByDay(entries)

	days := make([]DaySummary, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dayEntries := byDay[d]
		if dayEntries == nil {
			dayEntries = []models.Entry{}
		}
		days = append(days, DaySummary{
			Date:    d,
			Workday: IsWorkday(d),
			Total:   DayTotal(dayEntries),
			Status:  DayStatus(d, dayEntries, today),
			Entries: dayEntries,
		})
	}
	return days
}

// GroupByDay buckets entries by calendar date, keeping input order within a day.
func GroupByDay(entries []models.Entry) map[time.Time][]models.Entry {
	byDay := make(map[time.Time][]models.Entry)
	for _, e := range entries {
		d := DateOf(e.Date)
		byDay[d] = append(byDay[d], e)
	}
	return byDay
}

// CalendarSummary counts days per status. MissingHours is what the pending
// and incomplete days still need to reach the daily minimum.
type CalendarSummary struct {
	Complete     int             `json:"complete"`
	Incomplete   int             `json:"incomplete"`
	Pending      int             `json:"pending"`
	Weekend      int             `json:"weekend"`
	Future       int             `json:"future"`
	Logged       decimal.Decimal `json:"logged"`
	MissingHours decimal.Decimal `json:"missing_hours"`
}

func SummarizeDays(days []DaySummary) CalendarSummary {
	summary := CalendarSummary{Logged: decimal.Zero, MissingHours: decimal.Zero}
	for _, day := range days {
		summary.Logged = summary.Logged.Add(day.Total)
		switch day.Status {
		case StatusComplete:
			summary.Complete++
		case StatusIncomplete:
			summary.Incomplete++
			summary.MissingHours = summary.MissingHours.Add(MinimumDailyHours.Sub(day.Total))
		case StatusPending:
			summary.Pending++
			summary.MissingHours = summary.MissingHours.Add(MinimumDailyHours.Sub(day.Total))
		case StatusWeekend:
			summary.Weekend++
		case StatusFuture:
			summary.Future++
		}
	}
	return summary
}

// WeekTotal is the logged total of one ISO week, clipped to the queried range.
type WeekTotal struct {
	Label string          `json:"label"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Total decimal.Decimal `json:"total"`
}

// WeeklyTotals buckets entries within [start, end] by ISO week. Every week the
// range touches is present, including empty ones.
func WeeklyTotals(entries []models.Entry, start, end time.Time) []WeekTotal {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return []WeekTotal{}
	}

	var weeks []WeekTotal
	index := make(map[time.Time]int)
	for monday := WeekStart(start); !monday.After(end); monday = monday.AddDate(0, 0, 7) {
		wStart, wEnd := monday, monday.AddDate(0, 0, 6)
		if wStart.Before(start) {
			wStart = start
		}
		if wEnd.After(end) {
			wEnd = end
		}
		index[monday] = len(weeks)
		weeks = append(weeks, WeekTotal{Label: ISOWeekLabel(monday), Start: wStart, End: wEnd, Total: decimal.Zero})
	}

	for i := range entries {
		e := &entries[i]
		if !InRange(e.Date, start, end) {
			continue
		}
		w := &weeks[index[WeekStart(e.Date)]]
		w.Total = w.Total.Add(e.Hours)
	}
	return weeks
}
