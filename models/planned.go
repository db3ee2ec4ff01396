package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedAllocation is a manager's forecast of hours for a professional on a day.
type PlannedAllocation struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	OwnerID      string          `gorm:"not null;size:36;index" json:"owner_id"`
	Owner        *Professional   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Date         time.Time       `gorm:"not null;type:date;index" json:"date"`
	PlannedHours decimal.Decimal `gorm:"not null;type:decimal(4,2)" json:"planned_hours"`
	Kind         EntryKind       `gorm:"not null;size:50" json:"kind"`
	ProjectID    *uint           `gorm:"index" json:"project_id"`
	Project      *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AuthoredBy   string          `gorm:"not null;size:36" json:"authored_by"`
}
