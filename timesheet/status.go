package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"hourbook/models"
)

var (
	// MinimumDailyHours is the least a workday may hold once logging has begun.
	MinimumDailyHours = decimal.NewFromInt(8)
	// MaximumDailyHours caps a day's total and a single planned allocation.
	MaximumDailyHours = decimal.NewFromInt(24)
)

// HoursScale is the number of decimal places an hour value may carry.
const HoursScale = 2

type Status string

const (
	StatusWeekend    Status = "weekend"
	StatusFuture     Status = "future"
	StatusPending    Status = "pending"
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// DayTotal sums the hours of the given entries.
func DayTotal(entries []models.Entry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].Hours)
	}
	return total
}

// DayStatus classifies a calendar day. Weekends win over everything, then days
// after today, then the logged total decides between pending, incomplete and
// complete.
func DayStatus(date time.Time, entries []models.Entry, today time.Time) Status {
	day := DateOf(date)
	if !IsWorkday(day) {
		return StatusWeekend
	}
	if day.After(DateOf(today)) {
		return StatusFuture
	}

	total := DayTotal(entries)
	switch {
	case total.Sign() <= 0:
		return StatusPending
	case total.LessThan(MinimumDailyHours):
		return StatusIncomplete
	default:
		return StatusComplete
	}
}
