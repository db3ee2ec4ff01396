package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/database"
	"hourbook/models"
	"hourbook/timesheet"
)

type incurredRow struct {
	Date         string           `json:"date"`
	OwnerID      string           `json:"owner_id"`
	Professional string           `json:"professional"`
	Kind         models.EntryKind `json:"kind"`
	ProjectID    *uint            `json:"project_id"`
	ProjectName  string           `json:"project_name"`
	Hours        decimal.Decimal  `json:"hours"`
	Note         string           `json:"note"`
	Approved     bool             `json:"approved"`
}

type plannedRow struct {
	Date         string           `json:"date"`
	OwnerID      string           `json:"owner_id"`
	Professional string           `json:"professional"`
	Kind         models.EntryKind `json:"kind"`
	ProjectID    *uint            `json:"project_id"`
	ProjectName  string           `json:"project_name"`
	PlannedHours decimal.Decimal  `json:"planned_hours"`
}

type allocationRow struct {
	timesheet.ProfessionalAllocation
	Name string `json:"name"`
}

type report[T any] struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Rows  []T    `json:"rows"`
}

func newReport[T any](start, end time.Time, rows []T) report[T] {
	return report[T]{Start: start.Format(timesheet.DateLayout), End: end.Format(timesheet.DateLayout), Rows: rows}
}

func projectName(p *models.Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func incurredRows(entries []models.Entry) []incurredRow {
	rows := make([]incurredRow, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		row := incurredRow{
			Date:        e.Date.Format(timesheet.DateLayout),
			OwnerID:     e.OwnerID,
			Kind:        e.Kind,
			ProjectID:   e.ProjectID,
			ProjectName: projectName(e.Project),
			Hours:       e.Hours,
			Note:        e.Note,
			Approved:    e.IsApproved(),
		}
		if e.Owner != nil {
			row.Professional = e.Owner.DisplayName()
		}
		rows = append(rows, row)
	}
	return rows
}

func (a *API) IncurredReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := a.store.FetchAllEntries(r.Context(), start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rows := incurredRows(entries)
	writeJSON(w, http.StatusOK, newReport(start, end, rows))
}

func (a *API) PlannedReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), database.PlanFilter{}, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	names, err := a.professionalNames(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rows := make([]plannedRow, 0, len(plans))
	for i := range plans {
		p := &plans[i]
		rows = append(rows, plannedRow{
			Date:         p.Date.Format(timesheet.DateLayout),
			OwnerID:      p.OwnerID,
			Professional: names[p.OwnerID],
			Kind:         p.Kind,
			ProjectID:    p.ProjectID,
			ProjectName:  projectName(p.Project),
			PlannedHours: p.PlannedHours,
		})
	}
	writeJSON(w, http.StatusOK, newReport(start, end, rows))
}

func (a *API) AllocationReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := a.store.FetchAllEntries(r.Context(), start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), database.PlanFilter{}, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	names, err := a.professionalNames(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	allocations := timesheet.AllocationByProfessional(entries, plans)
	rows := make([]allocationRow, 0, len(allocations))
	for _, alloc := range allocations {
		rows = append(rows, allocationRow{ProfessionalAllocation: alloc, Name: names[alloc.OwnerID]})
	}
	writeJSON(w, http.StatusOK, newReport(start, end, rows))
}

func (a *API) Backup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.store.Backup(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	filename := "hourbook-backup-" + snapshot.Timestamp.UTC().Format("20060102-150405") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(w, http.StatusOK, snapshot)
}
