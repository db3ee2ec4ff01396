package timesheet_test

import (
	"errors"
	"testing"
	"time"

	"hourbook/models"
	"hourbook/timesheet"
)

func TestAllocationPercentage(t *testing.T) {
	if _, err := timesheet.AllocationPercentage(hours("92"), hours("0")); !errors.Is(err, timesheet.ErrNoBaseline) {
		t.Errorf("AllocationPercentage(92, 0) error = %v, want ErrNoBaseline", err)
	}

	tests := []struct {
		actual, planned, want string
	}{
		{"92", "100", "92"},
		{"0", "160", "0"},
		{"176", "160", "110"},
		{"84", "168", "50"},
	}
	for _, tt := range tests {
		got, err := timesheet.AllocationPercentage(hours(tt.actual), hours(tt.planned))
		if err != nil {
			t.Fatalf("AllocationPercentage(%s, %s): %v", tt.actual, tt.planned, err)
		}
		assertHours(t, "AllocationPercentage("+tt.actual+", "+tt.planned+")", got, tt.want)
	}
}

func TestMonthlyAllocation(t *testing.T) {
	feb := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		projectEntry("u1", feb, "9", 1),
		projectEntry("u2", feb, "8", 1),
		projectEntry("u1", tuesday, "10", 1),
	}
	plans := []models.PlannedAllocation{
		plan("u1", feb, "8", 1),
		plan("u2", feb, "8", 1),
	}

	months := timesheet.MonthlyAllocation(entries, plans, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	if len(months) != 3 {
		t.Fatalf("MonthlyAllocation returned %d months, want 3", len(months))
	}
	if months[0].Month != "2026-01" || months[2].Month != "2026-03" {
		t.Errorf("months = %s..%s, want 2026-01..2026-03", months[0].Month, months[2].Month)
	}

	if months[0].Percentage.Valid {
		t.Errorf("January percentage = %s, want null", months[0].Percentage.Decimal)
	}
	assertHours(t, "February actual", months[1].Actual, "17")
	assertHours(t, "February planned", months[1].Planned, "16")
	assertHours(t, "February percentage", months[1].Percentage.Decimal, "106.25")
	assertHours(t, "February overtime", months[1].Overtime, "1")

	assertHours(t, "March overtime", months[2].Overtime, "10")
	if months[2].Percentage.Valid {
		t.Error("March has no plan, percentage must be null")
	}
}

func TestAllocationByProfessional(t *testing.T) {
	entries := []models.Entry{
		projectEntry("u2", tuesday, "8", 1),
		kindEntry("u1", tuesday, "8", models.KindVacation),
		projectEntry("u1", tuesday.AddDate(0, 0, 1), "4", 1),
	}
	plans := []models.PlannedAllocation{
		plan("u1", tuesday, "8", 1),
		plan("u1", tuesday.AddDate(0, 0, 1), "8", 1),
		plan("u3", tuesday, "8", 1),
	}

	got := timesheet.AllocationByProfessional(entries, plans)
	if len(got) != 3 {
		t.Fatalf("AllocationByProfessional returned %d rows, want 3", len(got))
	}
	if got[0].OwnerID != "u1" || got[1].OwnerID != "u2" || got[2].OwnerID != "u3" {
		t.Errorf("owners = %s,%s,%s, want u1,u2,u3", got[0].OwnerID, got[1].OwnerID, got[2].OwnerID)
	}
	assertHours(t, "u1 percentage", got[0].Percentage.Decimal, "75")
	if got[1].Percentage.Valid {
		t.Error("u2 has no plan, percentage must be null")
	}
	assertHours(t, "u3 percentage", got[2].Percentage.Decimal, "0")
}
