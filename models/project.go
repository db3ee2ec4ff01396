package models

import (
	"time"
)

type ProjectType string

const (
	ProjectTypeSOX        ProjectType = "SOX"
	ProjectTypeLGPD       ProjectType = "LGPD"
	ProjectTypeAudit      ProjectType = "Audit"
	ProjectTypeConsulting ProjectType = "Consulting"
	ProjectTypeVAR        ProjectType = "VAR"
	ProjectTypeBPO        ProjectType = "BPO"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeSOX, ProjectTypeLGPD, ProjectTypeAudit, ProjectTypeConsulting, ProjectTypeVAR, ProjectTypeBPO:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPaused    ProjectStatus = "paused"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectActive || s == ProjectCompleted || s == ProjectPaused
}

// Project is a client engagement hours are booked against. Status and IsActive
// are set independently; nothing keeps them consistent.
type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Name        string        `gorm:"not null;size:255" json:"name"`
	Description string        `json:"description"`
	ClientName  string        `gorm:"size:255" json:"client_name"`
	ProjectType ProjectType   `gorm:"size:100" json:"project_type"`
	StartDate   *time.Time    `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time    `gorm:"type:date" json:"end_date"`
	Status      ProjectStatus `gorm:"not null;size:50" json:"status"`
	IsActive    bool          `gorm:"not null" json:"is_active"`
}

// OverlapsRange reports whether the project's schedule intersects [start, end].
// Missing bounds are open.
func (p *Project) OverlapsRange(start, end time.Time) bool {
	if p.StartDate != nil && p.StartDate.After(end) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(start) {
		return false
	}
	return true
}
