package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"hourbook/database"
	"hourbook/middleware"
	"hourbook/timesheet"
)

var (
	errForbidden = errors.New("not allowed for this professional")
	errApproved  = errors.New("approved entries cannot be changed")
	errEmailUsed = errors.New("email already registered")
)

// badRequest marks malformed input: bad query parameters, path values or bodies.
type badRequest struct {
	field string
	msg   string
}

func (e *badRequest) Error() string {
	return e.field + ": " + e.msg
}

func invalidParam(field, msg string) error {
	return &badRequest{field: field, msg: msg}
}

// fieldError is a well-formed body that breaks a record rule.
type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.msg
}

func invalidField(field, msg string) error {
	return &fieldError{field: field, msg: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, middleware.ErrorBody{Error: code, Message: message, Details: details})
}

// respondError maps store, engine and request errors onto HTTP statuses.
// Anything unrecognised is logged and reported as 500 without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		bad   *badRequest
		field *fieldError
	)
	switch {
	case errors.As(err, &bad):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error(), map[string]string{"field": bad.field})
	case errors.As(err, &field):
		writeError(w, http.StatusUnprocessableEntity, "invalid_field", err.Error(), map[string]string{"field": field.field})
	case timesheet.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, timesheet.ErrorKind(err), err.Error(), validationDetails(err))
	case errors.Is(err, timesheet.ErrNoBaseline):
		writeError(w, http.StatusUnprocessableEntity, "no_baseline", err.Error(), nil)
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found", nil)
	case errors.Is(err, errForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, errApproved), errors.Is(err, errEmailUsed):
		writeError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, database.ErrInUse):
		writeError(w, http.StatusConflict, "conflict", "record still has entries, plans or vacation schedules; deactivate it instead", nil)
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}

func validationDetails(err error) map[string]string {
	var (
		below   *timesheet.BelowMinimumError
		exceeds *timesheet.ExceedsMaximumError
		missing *timesheet.MissingProjectError
		invalid *timesheet.InvalidEntryError
	)
	switch {
	case errors.As(err, &below):
		return map[string]string{"date": below.Date.Format(timesheet.DateLayout), "total": below.Total.String()}
	case errors.As(err, &exceeds):
		return map[string]string{"date": exceeds.Date.Format(timesheet.DateLayout), "total": exceeds.Total.String()}
	case errors.As(err, &missing):
		return map[string]string{"index": strconv.Itoa(missing.Index)}
	case errors.As(err, &invalid):
		return map[string]string{"index": strconv.Itoa(invalid.Index), "field": invalid.Field}
	}
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return invalidParam("body", err.Error())
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, invalidParam("id", "must be a positive integer")
	}
	return uint(id), nil
}

func queryDate(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	d, err := timesheet.ParseDate(raw)
	if err != nil {
		return time.Time{}, invalidParam(name, "expected YYYY-MM-DD")
	}
	return d, nil
}

// queryRange reads start and end, defaulting to the month containing today.
func queryRange(r *http.Request, today time.Time) (time.Time, time.Time, error) {
	first, last := timesheet.MonthRange(today.Year(), today.Month())
	start, err := queryDate(r, "start", first)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := queryDate(r, "end", last)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, invalidParam("end", "must not be before start")
	}
	return start, end, nil
}

func queryInt(r *http.Request, name string, fallback, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, invalidParam(name, "must be an integer between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
	return n, nil
}

func queryUint(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return nil, invalidParam(name, "must be a positive integer")
	}
	id := uint(n)
	return &id, nil
}
