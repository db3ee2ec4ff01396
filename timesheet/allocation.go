package timesheet

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

var hundred = decimal.NewFromInt(100)

// AllocationPercentage returns actual/planned*100, unclamped so that values
// above 100 signal over-allocation. Zero planned hours yield ErrNoBaseline.
func AllocationPercentage(actual, planned decimal.Decimal) (decimal.Decimal, error) {
	if planned.IsZero() {
		return decimal.Decimal{}, ErrNoBaseline
	}
	return actual.Div(planned).Mul(hundred), nil
}

// percentage is AllocationPercentage rounded for reports, null without a baseline.
func percentage(part, planned decimal.Decimal) decimal.NullDecimal {
	pct, err := AllocationPercentage(part, planned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(pct.Round(2))
}

func positive(d decimal.Decimal) decimal.Decimal {
	if d.IsPositive() {
		return d
	}
	return decimal.Zero
}

// MonthAllocation compares logged against planned hours for one calendar month.
type MonthAllocation struct {
	Month      string              `json:"month"`
	Actual     decimal.Decimal     `json:"actual"`
	Planned    decimal.Decimal     `json:"planned"`
	Percentage decimal.NullDecimal `json:"percentage"`
	Overtime   decimal.Decimal     `json:"overtime"`
}

// MonthlyAllocation buckets entries and plans within [start, end] by month.
// Every month the range touches is present.
func MonthlyAllocation(entries []models.Entry, plans []models.PlannedAllocation, start, end time.Time) []MonthAllocation {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return []MonthAllocation{}
	}

	var months []MonthAllocation
	index := make(map[string]int)
	for m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(end); m = m.AddDate(0, 1, 0) {
		index[MonthLabel(m)] = len(months)
		months = append(months, MonthAllocation{Month: MonthLabel(m), Actual: decimal.Zero, Planned: decimal.Zero})
	}

	for i := range entries {
		if InRange(entries[i].Date, start, end) {
			m := &months[index[MonthLabel(entries[i].Date)]]
			m.Actual = m.Actual.Add(entries[i].Hours)
		}
	}
	for i := range plans {
		if InRange(plans[i].Date, start, end) {
			m := &months[index[MonthLabel(plans[i].Date)]]
			m.Planned = m.Planned.Add(plans[i].PlannedHours)
		}
	}
	for i := range months {
		months[i].Percentage = percentage(months[i].Actual, months[i].Planned)
		months[i].Overtime = positive(months[i].Actual.Sub(months[i].Planned))
	}
	return months
}

// ProfessionalAllocation compares one professional's logged and planned hours.
type ProfessionalAllocation struct {
	OwnerID    string              `json:"owner_id"`
	Actual     decimal.Decimal     `json:"actual"`
	Planned    decimal.Decimal     `json:"planned"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

// AllocationByProfessional totals every owner present in either input, ordered
// by owner id. The caller decides the period by what it passes in.
func AllocationByProfessional(entries []models.Entry, plans []models.PlannedAllocation) []ProfessionalAllocation {
	actual, planned := sumByOwner(entries, plans)

	out := make([]ProfessionalAllocation, 0, len(actual))
	for _, owner := range ownerIDs(actual, planned) {
		out = append(out, ProfessionalAllocation{
			OwnerID:    owner,
			Actual:     actual[owner],
			Planned:    planned[owner],
			Percentage: percentage(actual[owner], planned[owner]),
		})
	}
	return out
}

func sumByOwner(entries []models.Entry, plans []models.PlannedAllocation) (map[string]decimal.Decimal, map[string]decimal.Decimal) {
	actual := make(map[string]decimal.Decimal)
	planned := make(map[string]decimal.Decimal)
	for i := range entries {
		actual[entries[i].OwnerID] = actual[entries[i].OwnerID].Add(entries[i].Hours)
	}
	for i := range plans {
		planned[plans[i].OwnerID] = planned[plans[i].OwnerID].Add(plans[i].PlannedHours)
	}
	return actual, planned
}

func ownerIDs(sets ...map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, set := range sets {
		for id := range set {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
