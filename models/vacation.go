package models

import "time"

type VacationType string

const (
	VacationRegular  VacationType = "vacation"
	VacationSick     VacationType = "sick_leave"
	VacationPersonal VacationType = "personal_leave"
)

func (t VacationType) Valid() bool {
	return t == VacationRegular || t == VacationSick || t == VacationPersonal
}

type VacationStatus string

const (
	VacationPending  VacationStatus = "pending"
	VacationApproved VacationStatus = "approved"
	VacationRejected VacationStatus = "rejected"
)

// VacationSchedule is a requested absence spanning one or more days.
// TotalDays counts the workdays between StartDate and EndDate.
type VacationSchedule struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	OwnerID      string         `gorm:"not null;size:36;index" json:"owner_id"`
	Owner        *Professional  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	StartDate    time.Time      `gorm:"not null;type:date" json:"start_date"`
	EndDate      time.Time      `gorm:"not null;type:date" json:"end_date"`
	VacationType VacationType   `gorm:"not null;size:50" json:"vacation_type"`
	TotalDays    int            `gorm:"not null" json:"total_days"`
	Status       VacationStatus `gorm:"not null;size:50" json:"status"`
	ApprovedBy   *string        `gorm:"size:36" json:"approved_by"`
	ApprovedAt   *time.Time     `json:"approved_at"`
	Notes        string         `json:"notes"`
}
