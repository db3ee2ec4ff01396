package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/models"
)

type professionalInput struct {
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Role       models.Role `json:"role"`
	Position   string      `json:"position"`
	Department string      `json:"department"`
	IsActive   *bool       `json:"is_active"`
}

func (in professionalInput) apply(p *models.Professional) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return invalidField("email", "must be a valid address")
	}
	role := in.Role
	if role == "" {
		role = models.RoleBasic
	}
	if !role.Valid() {
		return invalidField("role", "unknown role "+string(role))
	}

	p.Email = email
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.Role = role
	p.Position = in.Position
	p.Department = in.Department
	p.IsActive = in.IsActive == nil || *in.IsActive
	return nil
}

// ensureEmailFree fails with errEmailUsed when another professional owns email.
func (a *API) ensureEmailFree(r *http.Request, email, selfID string) error {
	other, err := a.store.GetProfessionalByEmail(r.Context(), email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return errEmailUsed
	}
	return nil
}

func (a *API) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := a.store.ListProfessionals(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, professionals)
}

func (a *API) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var in professionalInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	var professional models.Professional
	if err := in.apply(&professional); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.ensureEmailFree(r, professional.Email, ""); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.CreateProfessional(r.Context(), &professional); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, professional)
}

func (a *API) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in professionalInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	professional, err := a.store.GetProfessional(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := in.apply(&professional); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.ensureEmailFree(r, professional.Email, professional.ID); err != nil {
		respondError(w, r, err)
		return
	}
	if err := a.store.UpdateProfessional(r.Context(), &professional); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, professional)
}

func (a *API) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.MustUser(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if id == user.ID {
		respondError(w, r, invalidField("id", "cannot delete yourself"))
		return
	}

	if err := a.store.DeleteProfessional(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
