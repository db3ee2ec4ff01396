package timesheet_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

// 2026-03-10 is a Tuesday.
var (
	tuesday  = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func hours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func projectRef(id uint) *uint {
	return &id
}

func projectEntry(owner string, date time.Time, h string, project uint) models.Entry {
	return models.Entry{OwnerID: owner, Date: date, Hours: hours(h), Kind: models.KindProject, ProjectID: projectRef(project)}
}

func kindEntry(owner string, date time.Time, h string, kind models.EntryKind) models.Entry {
	return models.Entry{OwnerID: owner, Date: date, Hours: hours(h), Kind: kind}
}

func plan(owner string, date time.Time, h string, project uint) models.PlannedAllocation {
	return models.PlannedAllocation{OwnerID: owner, Date: date, PlannedHours: hours(h), Kind: models.KindProject, ProjectID: projectRef(project), AuthoredBy: "manager"}
}

func assertHours(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(hours(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
