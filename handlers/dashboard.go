package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/models"
	"hourbook/timesheet"
)

const (
	defaultTrendMonths = 6
	defaultRankLimit   = 5
)

type personalDashboard struct {
	Month         string                               `json:"month"`
	Actual        decimal.Decimal                      `json:"actual"`
	Planned       decimal.Decimal                      `json:"planned"`
	AllocationPct decimal.NullDecimal                  `json:"allocation_pct"`
	Overtime      decimal.Decimal                      `json:"overtime"`
	Expected      decimal.Decimal                      `json:"expected"`
	Balance       decimal.Decimal                      `json:"balance"`
	ByKind        map[models.EntryKind]decimal.Decimal `json:"by_kind"`
	Summary       timesheet.CalendarSummary            `json:"summary"`
}

type overtimePoint struct {
	Month    string          `json:"month"`
	Overtime decimal.Decimal `json:"overtime"`
}

type rankedProfessional struct {
	timesheet.ProfessionalOvertime
	Name string `json:"name"`
}

// queryMonth reads month=YYYY-MM, defaulting to the month containing today.
func queryMonth(r *http.Request, today time.Time) (time.Time, time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		start, end := timesheet.MonthRange(today.Year(), today.Month())
		return start, end, nil
	}
	m, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, time.Time{}, invalidParam("month", "expected YYYY-MM")
	}
	start, end := timesheet.MonthRange(m.Year(), m.Month())
	return start, end, nil
}

// trailingMonths covers the current month and the n-1 months before it.
func trailingMonths(today time.Time, n int) (time.Time, time.Time) {
	_, end := timesheet.MonthRange(today.Year(), today.Month())
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	return first, end
}

// PersonalDashboard summarises the caller's own month. Expected hours count
// the daily minimum for every workday up to today; Balance is logged minus
// expected.
func (a *API) PersonalDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	today := a.currentDate()
	start, end, err := queryMonth(r, today)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := a.store.FetchEntries(r.Context(), user.ID, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), database.PlanFilter{OwnerID: user.ID}, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	days := timesheet.MonthCalendar(start.Year(), start.Month(), entries, today)
	expected := decimal.Zero
	for _, d := range days {
		if d.Workday && !d.Date.After(today) {
			expected = expected.Add(timesheet.MinimumDailyHours)
		}
	}

	month := timesheet.MonthlyAllocation(entries, plans, start, end)[0]
	totals := timesheet.AggregateRange(entries, start, end)
	writeJSON(w, http.StatusOK, personalDashboard{
		Month:         month.Month,
		Actual:        month.Actual,
		Planned:       month.Planned,
		AllocationPct: month.Percentage,
		Overtime:      month.Overtime,
		Expected:      expected,
		Balance:       month.Actual.Sub(expected),
		ByKind:        totals.ByKind,
		Summary:       timesheet.SummarizeDays(days),
	})
}

// trendInputs loads every entry and plan over the trailing months window.
func (a *API) trendInputs(r *http.Request) ([]models.Entry, []models.PlannedAllocation, time.Time, time.Time, error) {
	months, err := queryInt(r, "months", defaultTrendMonths, 1, 36)
	if err != nil {
		return nil, nil, time.Time{}, time.Time{}, err
	}
	start, end := trailingMonths(a.currentDate(), months)

	entries, err := a.store.FetchAllEntries(r.Context(), start, end)
	if err != nil {
		return nil, nil, time.Time{}, time.Time{}, err
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), database.PlanFilter{}, start, end)
	if err != nil {
		return nil, nil, time.Time{}, time.Time{}, err
	}
	return entries, plans, start, end, nil
}

func (a *API) AllocationTrend(w http.ResponseWriter, r *http.Request) {
	entries, plans, start, end, err := a.trendInputs(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheet.MonthlyAllocation(entries, plans, start, end))
}

func (a *API) OvertimeTrend(w http.ResponseWriter, r *http.Request) {
	entries, plans, start, end, err := a.trendInputs(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	months := timesheet.MonthlyAllocation(entries, plans, start, end)
	points := make([]overtimePoint, 0, len(months))
	for _, m := range months {
		points = append(points, overtimePoint{Month: m.Month, Overtime: m.Overtime})
	}
	writeJSON(w, http.StatusOK, points)
}

func (a *API) TopOvertime(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRankLimit, 0, 100)
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, plans, _, _, err := a.trendInputs(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	names, err := a.professionalNames(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	top := timesheet.TopOvertimeProfessionals(entries, plans, limit)
	ranked := make([]rankedProfessional, 0, len(top))
	for _, p := range top {
		ranked = append(ranked, rankedProfessional{ProfessionalOvertime: p, Name: names[p.OwnerID]})
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (a *API) TopVariance(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRankLimit, 0, 100)
	if err != nil {
		respondError(w, r, err)
		return
	}
	report, err := a.varianceReport(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timesheet.TopVariance(report, limit))
}

func (a *API) varianceReport(r *http.Request) ([]timesheet.ProjectVariance, error) {
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		return nil, err
	}
	projects, err := a.store.FetchProjects(r.Context())
	if err != nil {
		return nil, err
	}
	entries, err := a.store.FetchAllEntries(r.Context(), start, end)
	if err != nil {
		return nil, err
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), database.PlanFilter{}, start, end)
	if err != nil {
		return nil, err
	}
	return timesheet.VarianceReport(projects, entries, plans, start, end), nil
}

func (a *API) professionalNames(r *http.Request) (map[string]string, error) {
	professionals, err := a.store.ListProfessionals(r.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(professionals))
	for i := range professionals {
		names[professionals[i].ID] = professionals[i].DisplayName()
	}
	return names, nil
}
