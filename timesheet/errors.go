package timesheet

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoBaseline is returned when a percentage is requested against zero planned hours.
var ErrNoBaseline = errors.New("timesheet: no planned baseline")

// BelowMinimumError rejects a workday that has some, but fewer than eight, hours.
type BelowMinimumError struct {
	Date  time.Time
	Total decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("timesheet: %s has %s hours logged, workdays need at least %s",
		e.Date.Format(DateLayout), e.Total, MinimumDailyHours)
}

// ExceedsMaximumError rejects a day whose entries add up to more than 24 hours.
type ExceedsMaximumError struct {
	Date  time.Time
	Total decimal.Decimal
}

func (e *ExceedsMaximumError) Error() string {
	return fmt.Sprintf("timesheet: %s has %s hours logged, a day holds at most %s",
		e.Date.Format(DateLayout), e.Total, MaximumDailyHours)
}

// MissingProjectError flags a project entry without a project reference.
// Index is the entry's position in the batch; EntryID is zero for new entries.
type MissingProjectError struct {
	EntryID uint
	Index   int
}

func (e *MissingProjectError) Error() string {
	if e.EntryID != 0 {
		return fmt.Sprintf("timesheet: project entry %d has no project", e.EntryID)
	}
	return fmt.Sprintf("timesheet: project entry at position %d has no project", e.Index)
}

// InvalidEntryError covers the remaining per-record rules: hour bounds, kinds,
// stray project references and batches mixing days or owners.
type InvalidEntryError struct {
	EntryID uint
	Index   int
	Field   string
	Reason  string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("timesheet: entry at position %d: %s: %s", e.Index, e.Field, e.Reason)
}

// ErrorKind maps engine errors to a stable label for responses and logs.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		below   *BelowMinimumError
		exceeds *ExceedsMaximumError
		missing *MissingProjectError
		invalid *InvalidEntryError
	)
	switch {
	case errors.Is(err, ErrNoBaseline):
		return "no_baseline"
	case errors.As(err, &below):
		return "below_minimum"
	case errors.As(err, &exceeds):
		return "exceeds_maximum"
	case errors.As(err, &missing):
		return "missing_project"
	case errors.As(err, &invalid):
		return "invalid_entry"
	}
	return "unexpected"
}

// IsValidationError reports whether err is one of the engine's rule violations.
func IsValidationError(err error) bool {
	switch ErrorKind(err) {
	case "below_minimum", "exceeds_maximum", "missing_project", "invalid_entry":
		return true
	}
	return false
}
