package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/models"
	"hourbook/timesheet"
)

type entryInput struct {
	Hours         decimal.Decimal  `json:"hours"`
	Kind          models.EntryKind `json:"kind"`
	ProjectID     *uint            `json:"project_id"`
	Note          string           `json:"note"`
	Justification string           `json:"justification"`
}

type dayRequest struct {
	Entries []entryInput `json:"entries"`
}

type monthResponse struct {
	OwnerID string                    `json:"owner_id"`
	Month   string                    `json:"month"`
	Days    []timesheet.DaySummary    `json:"days"`
	Summary timesheet.CalendarSummary `json:"summary"`
	Weeks   []timesheet.WeekTotal     `json:"weeks"`
	Totals  timesheet.RangeTotals     `json:"totals"`
}

func (a *API) ListEntries(w http.ResponseWriter, r *http.Request) {
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
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := a.store.FetchEntries(r.Context(), owner, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *API) MonthTimesheet(w http.ResponseWriter, r *http.Request) {
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

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 9999 {
		respondError(w, r, invalidParam("year", "must be a four digit year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		respondError(w, r, invalidParam("month", "must be between 1 and 12"))
		return
	}

	start, end := timesheet.MonthRange(year, time.Month(month))
	entries, err := a.store.FetchEntries(r.Context(), owner, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}

	days := timesheet.MonthCalendar(year, time.Month(month), entries, a.currentDate())
	writeJSON(w, http.StatusOK, monthResponse{
		OwnerID: owner,
		Month:   timesheet.MonthLabel(start),
		Days:    days,
		Summary: timesheet.SummarizeDays(days),
		Weeks:   timesheet.WeeklyTotals(entries, start, end),
		Totals:  timesheet.AggregateRange(entries, start, end),
	})
}

// SaveDay replaces the caller's (or, for advanced professionals, the named
// owner's) unapproved entries for one day. The approved entries that stay on
// the day are validated together with the new batch, and nothing is written
// unless the whole day passes.
func (a *API) SaveDay(w http.ResponseWriter, r *http.Request) {
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
	day, err := timesheet.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, r, invalidParam("date", "expected YYYY-MM-DD"))
		return
	}

	var req dayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	batch := make([]models.Entry, 0, len(req.Entries))
	for i, in := range req.Entries {
		if in.ProjectID != nil {
			if _, err := a.store.GetProject(r.Context(), *in.ProjectID); err != nil {
				if errors.Is(err, database.ErrNotFound) {
					err = &timesheet.InvalidEntryError{Index: i, Field: "project_id", Reason: "unknown project"}
				}
				respondError(w, r, err)
				return
			}
		}
		batch = append(batch, models.Entry{
			OwnerID:       owner,
			Date:          day,
			Hours:         in.Hours,
			Kind:          in.Kind,
			ProjectID:     in.ProjectID,
			Note:          in.Note,
			Justification: in.Justification,
		})
	}

	existing, err := a.store.FetchEntries(r.Context(), owner, day, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	whole := append([]models.Entry{}, batch...)
	for _, e := range existing {
		if e.IsApproved() {
			whole = append(whole, e)
		}
	}

	today := a.currentDate()
	if err := timesheet.ValidateDayEntry(day, whole, today); err != nil {
		hlog.FromRequest(r).Info().
			Str("owner_id", owner).
			Str("date", day.Format(timesheet.DateLayout)).
			Str("kind", timesheet.ErrorKind(err)).
			Msg("day rejected")
		respondError(w, r, err)
		return
	}

	if err := a.store.SaveEntryBatch(r.Context(), owner, day, batch); err != nil {
		respondError(w, r, err)
		return
	}

	saved, err := a.store.FetchEntries(r.Context(), owner, day, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if saved == nil {
		saved = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, timesheet.DaySummary{
		Date:    day,
		Workday: timesheet.IsWorkday(day),
		Total:   timesheet.DayTotal(saved),
		Status:  timesheet.DayStatus(day, saved, today),
		Entries: saved,
	})
}

func (a *API) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := a.store.GetEntry(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !user.CanManageEntriesFor(entry.OwnerID) {
		respondError(w, r, errForbidden)
		return
	}
	if !user.CanDeleteEntry(&entry) {
		respondError(w, r, errApproved)
		return
	}

	if err := a.store.DeleteEntry(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	existing, err := a.store.GetEntry(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if existing.IsApproved() {
		respondError(w, r, errApproved)
		return
	}

	entry, err := a.store.ApproveEntry(r.Context(), id, user.ID, a.now().UTC())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
