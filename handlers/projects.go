package handlers

import (
	"net/http"
	"strings"
	"time"

	"hourbook/models"
	"hourbook/timesheet"
)

type projectInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ClientName  string               `json:"client_name"`
	ProjectType models.ProjectType   `json:"project_type"`
	StartDate   *string              `json:"start_date"`
	EndDate     *string              `json:"end_date"`
	Status      models.ProjectStatus `json:"status"`
	IsActive    *bool                `json:"is_active"`
}

// apply copies the input onto p. Status defaults to active and IsActive to
// true when omitted.
func (in projectInput) apply(p *models.Project) error {
	p.Name = strings.TrimSpace(in.Name)
	if p.Name == "" {
		return invalidField("name", "required")
	}
	if in.ProjectType != "" && !in.ProjectType.Valid() {
		return invalidField("project_type", "unknown project type "+string(in.ProjectType))
	}
	status := in.Status
	if status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		return invalidField("status", "unknown status "+string(status))
	}

	start, err := optionalDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := optionalDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return invalidField("end_date", "must not be before start_date")
	}

	p.Description = in.Description
	p.ClientName = in.ClientName
	p.ProjectType = in.ProjectType
	p.StartDate = start
	p.EndDate = end
	p.Status = status
	p.IsActive = in.IsActive == nil || *in.IsActive
	return nil
}

func optionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := timesheet.ParseDate(*raw)
	if err != nil {
		return nil, invalidField(field, "expected YYYY-MM-DD")
	}
	return &d, nil
}

func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.store.FetchProjects(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (a *API) ListActiveProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.store.FetchActiveProjects(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in projectInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	var project models.Project
	if err := in.apply(&project); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.CreateProject(r.Context(), &project); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (a *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in projectInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	project, err := a.store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := in.apply(&project); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.UpdateProject(r.Context(), &project); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// ProjectEntries lists the hours booked against one project in a range.
func (a *API) ProjectEntries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	start, end, err := queryRange(r, a.currentDate())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := a.store.GetProject(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := a.store.FetchProjectEntries(r.Context(), id, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": id,
		"entries":    entries,
		"totals":     timesheet.AggregateRange(entries, start, end),
	})
}
