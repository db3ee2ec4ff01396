package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	KindProject  EntryKind = "project"
	KindVacation EntryKind = "vacation"
	KindLeave    EntryKind = "leave"
	KindHourBank EntryKind = "hour_bank"
)

// EntryKinds lists every kind in reporting order.
var EntryKinds = []EntryKind{KindProject, KindVacation, KindLeave, KindHourBank}

func (k EntryKind) Valid() bool {
	switch k {
	case KindProject, KindVacation, KindLeave, KindHourBank:
		return true
	}
	return false
}

// Entry is one line of logged time for a professional on a calendar day.
type Entry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	OwnerID       string          `gorm:"not null;size:36;index:idx_entries_owner_date" json:"owner_id"`
	Owner         *Professional   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Date          time.Time       `gorm:"not null;type:date;index:idx_entries_owner_date" json:"date"`
	Hours         decimal.Decimal `gorm:"not null;type:decimal(4,2)" json:"hours"`
	Kind          EntryKind       `gorm:"not null;size:50" json:"kind"`
	ProjectID     *uint           `gorm:"index" json:"project_id"`
	Project       *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Note          string          `json:"note"`
	Justification string          `json:"justification"`
	ApprovedBy    *string         `gorm:"size:36" json:"approved_by"`
	ApprovedAt    *time.Time      `json:"approved_at"`
}

func (e *Entry) IsApproved() bool {
	return e.ApprovedAt != nil
}

func (e *Entry) Approve(by string, at time.Time) {
	e.ApprovedBy = &by
	e.ApprovedAt = &at
}
