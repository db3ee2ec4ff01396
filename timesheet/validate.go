package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

// ValidateDayEntry checks one owner's full set of entries for a single day
// before anything is written. Record-level rules are checked first, in batch
// order, then the day total.
//
// A workday up to today with a nonzero total under eight hours fails with
// *BelowMinimumError; an empty day passes and simply stays pending.
func ValidateDayEntry(date time.Time, entries []models.Entry, today time.Time) error {
	day := DateOf(date)

	for i := range entries {
		e := &entries[i]
		if !DateOf(e.Date).Equal(day) {
			return &InvalidEntryError{EntryID: e.ID, Index: i, Field: "date", Reason: "entry is not on " + day.Format(DateLayout)}
		}
		if e.OwnerID != entries[0].OwnerID {
			return &InvalidEntryError{EntryID: e.ID, Index: i, Field: "owner_id", Reason: "batch mixes owners"}
		}
		if err := checkRecord(i, e.ID, e.Kind, e.ProjectID, e.Hours, false); err != nil {
			return err
		}
	}

	total := DayTotal(entries)
	if total.GreaterThan(MaximumDailyHours) {
		return &ExceedsMaximumError{Date: day, Total: total}
	}
	if IsWorkday(day) && !day.After(DateOf(today)) && total.IsPositive() && total.LessThan(MinimumDailyHours) {
		return &BelowMinimumError{Date: day, Total: total}
	}
	return nil
}

// ValidatePlannedAllocation applies the record rules to a manager forecast.
// Hour-bank is not a plannable kind.
func ValidatePlannedAllocation(plan *models.PlannedAllocation) error {
	if plan.Kind == models.KindHourBank {
		return &InvalidEntryError{EntryID: plan.ID, Field: "kind", Reason: "hour_bank cannot be planned"}
	}
	if plan.OwnerID == "" {
		return &InvalidEntryError{EntryID: plan.ID, Field: "owner_id", Reason: "required"}
	}
	return checkRecord(0, plan.ID, plan.Kind, plan.ProjectID, plan.PlannedHours, true)
}

// checkRecord applies the per-record rules. Entries leave the 24h cap to the
// day total so an oversized day always reports ExceedsMaximumError; a plan
// stands alone and is capped here.
func checkRecord(index int, id uint, kind models.EntryKind, projectID *uint, hours decimal.Decimal, capped bool) error {
	if !kind.Valid() {
		return &InvalidEntryError{EntryID: id, Index: index, Field: "kind", Reason: "unknown kind " + string(kind)}
	}
	if hours.IsNegative() {
		return &InvalidEntryError{EntryID: id, Index: index, Field: "hours", Reason: "must not be negative"}
	}
	if capped && hours.GreaterThan(MaximumDailyHours) {
		return &InvalidEntryError{EntryID: id, Index: index, Field: "hours", Reason: "must be between 0 and 24"}
	}
	// Hours are stored as decimal(4,2).
	if !hours.Equal(hours.Round(HoursScale)) {
		return &InvalidEntryError{EntryID: id, Index: index, Field: "hours", Reason: "at most two decimal places"}
	}
	if kind == models.KindProject && projectID == nil {
		return &MissingProjectError{EntryID: id, Index: index}
	}
	if kind != models.KindProject && projectID != nil {
		return &InvalidEntryError{EntryID: id, Index: index, Field: "project_id", Reason: "only project entries reference a project"}
	}
	return nil
}
