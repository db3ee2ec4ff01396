package timesheet

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

// ProjectVariance is incurred minus planned hours of one project over a period.
// VariancePct is null when nothing was planned.
type ProjectVariance struct {
	ProjectID   uint                `json:"project_id"`
	ProjectName string              `json:"project_name"`
	ClientName  string              `json:"client_name"`
	Incurred    decimal.Decimal     `json:"incurred"`
	Planned     decimal.Decimal     `json:"planned"`
	Variance    decimal.Decimal     `json:"variance"`
	VariancePct decimal.NullDecimal `json:"variance_pct"`
}

// VarianceReport computes variance for every project active in [start, end]:
// projects whose schedule overlaps the range, plus any project that has
// incurred or planned hours in it. The result is ordered by variance
// descending, then project id ascending.
func VarianceReport(projects []models.Project, entries []models.Entry, plans []models.PlannedAllocation, start, end time.Time) []ProjectVariance {
	incurred := make(map[uint]decimal.Decimal)
	planned := make(map[uint]decimal.Decimal)
	for i := range entries {
		e := &entries[i]
		if e.Kind == models.KindProject && e.ProjectID != nil && InRange(e.Date, start, end) {
			incurred[*e.ProjectID] = incurred[*e.ProjectID].Add(e.Hours)
		}
	}
	for i := range plans {
		p := &plans[i]
		if p.ProjectID != nil && InRange(p.Date, start, end) {
			planned[*p.ProjectID] = planned[*p.ProjectID].Add(p.PlannedHours)
		}
	}

	report := make([]ProjectVariance, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		_, hasIncurred := incurred[p.ID]
		_, hasPlanned := planned[p.ID]
		if !hasIncurred && !hasPlanned && !p.OverlapsRange(DateOf(start), DateOf(end)) {
			continue
		}
		variance := incurred[p.ID].Sub(planned[p.ID])
		report = append(report, ProjectVariance{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			ClientName:  p.ClientName,
			Incurred:    incurred[p.ID],
			Planned:     planned[p.ID],
			Variance:    variance,
			VariancePct: percentage(variance, planned[p.ID]),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		if c := report[i].Variance.Cmp(report[j].Variance); c != 0 {
			return c > 0
		}
		return report[i].ProjectID < report[j].ProjectID
	})
	return report
}

// TopVariance keeps the first limit rows of an ordered report.
func TopVariance(report []ProjectVariance, limit int) []ProjectVariance {
	if limit <= 0 {
		return []ProjectVariance{}
	}
	if limit < len(report) {
		return report[:limit]
	}
	return report
}

// ProfessionalOvertime is logged minus planned hours for one professional.
type ProfessionalOvertime struct {
	OwnerID  string          `json:"owner_id"`
	Actual   decimal.Decimal `json:"actual"`
	Planned  decimal.Decimal `json:"planned"`
	Overtime decimal.Decimal `json:"overtime"`
}

// TopOvertimeProfessionals ranks professionals whose logged hours exceed their
// planned hours, largest overtime first and owner id ascending on ties. The
// period is whatever the inputs cover. A limit of zero returns an empty list.
func TopOvertimeProfessionals(entries []models.Entry, plans []models.PlannedAllocation, limit int) []ProfessionalOvertime {
	if limit <= 0 {
		return []ProfessionalOvertime{}
	}

	actual, planned := sumByOwner(entries, plans)
	ranked := make([]ProfessionalOvertime, 0, len(actual))
	for _, owner := range ownerIDs(actual, planned) {
		overtime := actual[owner].Sub(planned[owner])
		if !overtime.IsPositive() {
			continue
		}
		ranked = append(ranked, ProfessionalOvertime{
			OwnerID:  owner,
			Actual:   actual[owner],
			Planned:  planned[owner],
			Overtime: overtime,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Overtime.Cmp(ranked[j].Overtime); c != 0 {
			return c > 0
		}
		return ranked[i].OwnerID < ranked[j].OwnerID
	})
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
