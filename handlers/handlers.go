package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/models"
)

// Store is the record store the API reads and writes through.
type Store interface {
	FetchEntries(ctx context.Context, ownerID string, start, end time.Time) ([]models.Entry, error)
	FetchAllEntries(ctx context.Context, start, end time.Time) ([]models.Entry, error)
	FetchProjectEntries(ctx context.Context, projectID uint, start, end time.Time) ([]models.Entry, error)
	GetEntry(ctx context.Context, id uint) (models.Entry, error)
	SaveEntryBatch(ctx context.Context, ownerID string, date time.Time, entries []models.Entry) error
	DeleteEntry(ctx context.Context, id uint) error
	ApproveEntry(ctx context.Context, id uint, approverID string, at time.Time) (models.Entry, error)

	FetchPlannedAllocations(ctx context.Context, filter database.PlanFilter, start, end time.Time) ([]models.PlannedAllocation, error)
	GetPlannedAllocation(ctx context.Context, id uint) (models.PlannedAllocation, error)
	CreatePlannedAllocation(ctx context.Context, plan *models.PlannedAllocation) error
	UpdatePlannedAllocation(ctx context.Context, plan *models.PlannedAllocation) error
	DeletePlannedAllocation(ctx context.Context, id uint) error

	FetchProjects(ctx context.Context) ([]models.Project, error)
	FetchActiveProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error

	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	GetProfessional(ctx context.Context, id string) (models.Professional, error)
	GetProfessionalByEmail(ctx context.Context, email string) (models.Professional, error)
	CreateProfessional(ctx context.Context, professional *models.Professional) error
	UpdateProfessional(ctx context.Context, professional *models.Professional) error
	DeleteProfessional(ctx context.Context, id string) error

	FetchVacationSchedules(ctx context.Context, ownerID string) ([]models.VacationSchedule, error)
	CreateVacationSchedule(ctx context.Context, schedule *models.VacationSchedule) error

	Backup(ctx context.Context) (database.Snapshot, error)
}

type API struct {
	store Store
	now   func() time.Time
	today func(time.Time) time.Time
}

// NewAPI builds the handlers. today turns a wall-clock instant into the
// calendar date used for day status, usually config.Config.Today.
func NewAPI(store Store, now func() time.Time, today func(time.Time) time.Time) *API {
	if now == nil {
		now = time.Now
	}
	return &API{store: store, now: now, today: today}
}

func (a *API) currentDate() time.Time {
	return a.today(a.now())
}

// NewRouter mounts every route behind the shared middleware stack.
func NewRouter(api *API, auth *middleware.Auth, log zerolog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", api.Health)

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/me", api.Me)
		r.Get("/time-entries", api.ListEntries)
		r.Delete("/time-entries/{id}", api.DeleteEntry)
		r.Get("/timesheet/{year}/{month}", api.MonthTimesheet)
		r.Put("/timesheet/days/{date}", api.SaveDay)
		r.Get("/projects/active", api.ListActiveProjects)
		r.Get("/dashboard/personal", api.PersonalDashboard)
		r.Get("/vacations", api.ListVacations)
		r.Post("/vacations", api.CreateVacation)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdvanced))

			r.Post("/time-entries/{id}/approve", api.ApproveEntry)

			r.Get("/projects", api.ListProjects)
			r.Post("/projects", api.CreateProject)
			r.Put("/projects/{id}", api.UpdateProject)
			r.Get("/projects/{id}/entries", api.ProjectEntries)

			r.Get("/planned-hours", api.ListPlanned)
			r.Post("/planned-hours", api.CreatePlanned)
			r.Put("/planned-hours/{id}", api.UpdatePlanned)
			r.Delete("/planned-hours/{id}", api.DeletePlanned)

			r.Get("/professionals", api.ListProfessionals)
			r.Post("/professionals", api.CreateProfessional)
			r.Put("/professionals/{id}", api.UpdateProfessional)
			r.Delete("/professionals/{id}", api.DeleteProfessional)

			r.Get("/dashboard/allocation", api.AllocationTrend)
			r.Get("/dashboard/overtime", api.OvertimeTrend)
			r.Get("/dashboard/top-overtime", api.TopOvertime)
			r.Get("/dashboard/top-variance", api.TopVariance)

			r.Get("/reports/incurred", api.IncurredReport)
			r.Get("/reports/planned", api.PlannedReport)
			r.Get("/reports/allocation", api.AllocationReport)

			r.Get("/backup", api.Backup)
		})
	})

	return router
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// resolveOwner picks whose records a request is about: the owner_id query
// parameter when given, the caller otherwise. Only advanced professionals
// may name someone else.
func (a *API) resolveOwner(r *http.Request, user *models.Professional) (string, error) {
	owner := strings.TrimSpace(r.URL.Query().Get("owner_id"))
	if owner == "" || owner == user.ID {
		return user.ID, nil
	}
	if !user.CanManageEntriesFor(owner) {
		return "", errForbidden
	}
	if _, err := a.store.GetProfessional(r.Context(), owner); err != nil {
		return "", err
	}
	return owner, nil
}
