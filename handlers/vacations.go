package handlers

import (
	"net/http"

	"hourbook/middleware"
	"hourbook/models"
	"hourbook/timesheet"
)

type vacationInput struct {
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	VacationType models.VacationType `json:"vacation_type"`
	Notes        string              `json:"notes"`
}

func (a *API) ListVacations(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	owner, err := a.resolveOwner(r, user)
	if err != nil {
		respondError(w, r, err)
		return
	}

	schedules, err := a.store.FetchVacationSchedules(r.Context(), owner)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// CreateVacation records a pending absence request. TotalDays is derived from
// the range rather than taken from the body.
func (a *API) CreateVacation(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	owner, err := a.resolveOwner(r, user)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in vacationInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	start, err := timesheet.ParseDate(in.StartDate)
	if err != nil {
		respondError(w, r, invalidField("start_date", "expected YYYY-MM-DD"))
		return
	}
	end, err := timesheet.ParseDate(in.EndDate)
	if err != nil {
		respondError(w, r, invalidField("end_date", "expected YYYY-MM-DD"))
		return
	}
	if end.Before(start) {
		respondError(w, r, invalidField("end_date", "must not be before start_date"))
		return
	}
	if !in.VacationType.Valid() {
		respondError(w, r, invalidField("vacation_type", "unknown vacation type "+string(in.VacationType)))
		return
	}

	schedule := models.VacationSchedule{
		OwnerID:      owner,
		StartDate:    start,
		EndDate:      end,
		VacationType: in.VacationType,
		TotalDays:    timesheet.WorkdaysBetween(start, end),
		Status:       models.VacationPending,
		Notes:        in.Notes,
	}
	if err := a.store.CreateVacationSchedule(r.Context(), &schedule); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}
