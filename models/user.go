package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleBasic    Role = "basic"
	RoleAdvanced Role = "advanced"
)

func (r Role) Valid() bool {
	return r == RoleBasic || r == RoleAdvanced
}

// Professional is a staff member who logs hours. Advanced professionals act as
// managers: they see everyone's records and author planned allocations.
type Professional struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Email      string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	FirstName  string    `gorm:"size:100" json:"first_name"`
	LastName   string    `gorm:"size:100" json:"last_name"`
	Role       Role      `gorm:"not null;size:20" json:"role"`
	Position   string    `gorm:"size:100" json:"position"`
	Department string    `gorm:"size:100" json:"department"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = RoleBasic
	}
	return nil
}

func (p *Professional) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	return p.Email
}

func (p *Professional) IsAdvanced() bool {
	return p.Role == RoleAdvanced
}

func (p *Professional) CanManageEntriesFor(ownerID string) bool {
	if p.IsAdvanced() {
		return true
	}
	return p.ID == ownerID
}

func (p *Professional) CanViewAll() bool {
	return p.IsAdvanced()
}

func (p *Professional) CanAuthorPlans() bool {
	return p.IsAdvanced()
}

func (p *Professional) CanApprove() bool {
	return p.IsAdvanced()
}

// CanDeleteEntry allows owners to drop their own unapproved entries; advanced
// professionals may delete anything.
func (p *Professional) CanDeleteEntry(e *Entry) bool {
	if p.IsAdvanced() {
		return true
	}
	return p.ID == e.OwnerID && !e.IsApproved()
}
