package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/models"
	"hourbook/timesheet"
)

type plannedInput struct {
	OwnerID      string           `json:"owner_id"`
	Date         string           `json:"date"`
	PlannedHours decimal.Decimal  `json:"planned_hours"`
	Kind         models.EntryKind `json:"kind"`
	ProjectID    *uint            `json:"project_id"`
}

// buildPlan validates the input and fills plan, leaving ID and timestamps alone.
func (a *API) buildPlan(r *http.Request, in plannedInput, author string, plan *models.PlannedAllocation) error {
	date, err := timesheet.ParseDate(in.Date)
	if err != nil {
		return invalidField("date", "expected YYYY-MM-DD")
	}

	plan.OwnerID = strings.TrimSpace(in.OwnerID)
	plan.Date = date
	plan.PlannedHours = in.PlannedHours
	plan.Kind = in.Kind
	plan.ProjectID = in.ProjectID
	plan.AuthoredBy = author
	plan.Owner = nil
	plan.Project = nil

	if err := timesheet.ValidatePlannedAllocation(plan); err != nil {
		return err
	}
	if _, err := a.store.GetProfessional(r.Context(), plan.OwnerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return invalidField("owner_id", "unknown professional")
		}
		return err
	}
	if plan.ProjectID != nil {
		if _, err := a.store.GetProject(r.Context(), *plan.ProjectID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return invalidField("project_id", "unknown project")
			}
			return err
		}
	}
	return nil
}

func (a *API) ListPlanned(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}
	projectID, err := queryUint(r, "project_id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter := database.PlanFilter{
		OwnerID:   strings.TrimSpace(r.URL.Query().Get("owner_id")),
		ProjectID: projectID,
	}
	plans, err := a.store.FetchPlannedAllocations(r.Context(), filter, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (a *API) CreatePlanned(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in plannedInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	var plan models.PlannedAllocation
	if err := a.buildPlan(r, in, user.ID, &plan); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.CreatePlannedAllocation(r.Context(), &plan); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (a *API) UpdatePlanned(w http.ResponseWriter, r *http.Request) {
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
	var in plannedInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	plan, err := a.store.GetPlannedAllocation(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.buildPlan(r, in, user.ID, &plan); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.UpdatePlannedAllocation(r.Context(), &plan); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (a *API) DeletePlanned(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.DeletePlannedAllocation(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
