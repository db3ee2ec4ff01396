package timesheet_test

import (
	"testing"
	"time"

	"hourbook/models"
	"hourbook/timesheet"
)

var (
	rangeStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
)

func repeatEntries(owner string, project uint, days int, h string) []models.Entry {
	out := make([]models.Entry, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, projectEntry(owner, rangeStart.AddDate(0, 0, i+1), h, project))
	}
	return out
}

func repeatPlans(owner string, project uint, days int, h string) []models.PlannedAllocation {
	out := make([]models.PlannedAllocation, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, plan(owner, rangeStart.AddDate(0, 0, i+1), h, project))
	}
	return out
}

func TestVarianceReport(t *testing.T) {
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ended := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	projects := []models.Project{
		{ID: 1, Name: "SOX Ipiranga", ClientName: "Ipiranga"},
		{ID: 2, Name: "LGPD Varejo"},
		{ID: 3, Name: "Idle A"},
		{ID: 4, Name: "Idle B", StartDate: &before},
		{ID: 5, Name: "Closed", StartDate: &before, EndDate: &ended},
		{ID: 6, Name: "Under plan"},
	}

	var entries []models.Entry
	entries = append(entries, repeatEntries("u1", 1, 43, "9")...) // 387
	entries = append(entries, repeatEntries("u2", 2, 29, "5")...) // 145
	entries = append(entries, repeatEntries("u2", 6, 2, "4")...)  // 8
	entries = append(entries, projectEntry("u1", rangeEnd.AddDate(0, 0, 1), "8", 1))
	entries = append(entries, kindEntry("u1", rangeStart, "8", models.KindVacation))

	var plans []models.PlannedAllocation
	plans = append(plans, repeatPlans("u1", 1, 40, "8")...) // 320
	plans = append(plans, repeatPlans("u2", 2, 25, "4")...) // 100
	plans = append(plans, repeatPlans("u2", 6, 2, "8")...)  // 16

	report := timesheet.VarianceReport(projects, entries, plans, rangeStart, rangeEnd)

	wantOrder := []uint{1, 2, 3, 4, 6}
	if len(report) != len(wantOrder) {
		t.Fatalf("VarianceReport returned %d projects, want %d", len(report), len(wantOrder))
	}
	for i, id := range wantOrder {
		if report[i].ProjectID != id {
			t.Errorf("report[%d].ProjectID = %d, want %d", i, report[i].ProjectID, id)
		}
	}

	sox := report[0]
	assertHours(t, "incurred", sox.Incurred, "387")
	assertHours(t, "planned", sox.Planned, "320")
	assertHours(t, "variance", sox.Variance, "67")
	if !sox.VariancePct.Valid {
		t.Fatal("variance pct should be set when hours were planned")
	}
	assertHours(t, "variance pct", sox.VariancePct.Decimal.Round(1), "20.9")
	if sox.ProjectName != "SOX Ipiranga" || sox.ClientName != "Ipiranga" {
		t.Errorf("project labels = %q/%q", sox.ProjectName, sox.ClientName)
	}

	assertHours(t, "second variance", report[1].Variance, "45")
	if report[2].VariancePct.Valid {
		t.Error("idle project without plan must have a null variance pct")
	}
	assertHours(t, "under plan variance", report[4].Variance, "-8")

	top := timesheet.TopVariance(report, 2)
	if len(top) != 2 || top[0].ProjectID != 1 || top[1].ProjectID != 2 {
		t.Errorf("TopVariance(2) = %+v", top)
	}
	if got := timesheet.TopVariance(report, 0); len(got) != 0 {
		t.Errorf("TopVariance(0) returned %d rows, want 0", len(got))
	}
	if got := timesheet.TopVariance(report, 50); len(got) != len(report) {
		t.Errorf("TopVariance(50) returned %d rows, want %d", len(got), len(report))
	}
}

func TestTopOvertimeProfessionals(t *testing.T) {
	var entries []models.Entry
	entries = append(entries, repeatEntries("carla", 1, 10, "10")...) // 100
	entries = append(entries, repeatEntries("bruno", 1, 10, "9")...)  // 90
	entries = append(entries, repeatEntries("alice", 1, 10, "9")...)  // 90
	entries = append(entries, repeatEntries("diego", 1, 10, "7")...)  // 70
	entries = append(entries, kindEntry("erika", tuesday, "8", models.KindHourBank))

	var plans []models.PlannedAllocation
	for _, owner := range []string{"alice", "bruno", "carla", "diego"} {
		plans = append(plans, repeatPlans(owner, 1, 10, "8")...)
	}
	plans = append(plans, repeatPlans("erika", 1, 1, "8")...)

	got := timesheet.TopOvertimeProfessionals(entries, plans, 5)
	want := []struct {
		owner    string
		overtime string
	}{
		{"carla", "20"},
		{"alice", "10"},
		{"bruno", "10"},
	}
	if len(got) != len(want) {
		t.Fatalf("TopOvertimeProfessionals returned %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].OwnerID != w.owner {
			t.Errorf("rank %d = %s, want %s", i, got[i].OwnerID, w.owner)
		}
		assertHours(t, w.owner+" overtime", got[i].Overtime, w.overtime)
	}

	if top := timesheet.TopOvertimeProfessionals(entries, plans, 1); len(top) != 1 || top[0].OwnerID != "carla" {
		t.Errorf("TopOvertimeProfessionals(limit 1) = %+v", top)
	}
	if empty := timesheet.TopOvertimeProfessionals(entries, plans, 0); empty == nil || len(empty) != 0 {
		t.Errorf("TopOvertimeProfessionals(limit 0) = %#v, want empty list", empty)
	}
}
