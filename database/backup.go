package database

import (
	"context"
	"time"

	"hourbook/models"
)

const BackupVersion = "1.0"

// Snapshot is a full dump of every table.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Data      SnapshotData `json:"data"`
}

type SnapshotData struct {
	Professionals      []models.Professional      `json:"professionals"`
	Projects           []models.Project           `json:"projects"`
	Entries            []models.Entry             `json:"entries"`
	PlannedAllocations []models.PlannedAllocation `json:"planned_allocations"`
	VacationSchedules  []models.VacationSchedule  `json:"vacation_schedules"`
}

// Backup reads all tables inside one transaction so the dump is consistent.
func (s *Store) Backup(ctx context.Context) (Snapshot, error) {
	snapshot := Snapshot{Timestamp: time.Now().UTC(), Version: BackupVersion}
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Snapshot{}, tx.Error
	}
	defer tx.Rollback()

	data := &snapshot.Data
	if err := tx.Order("id").Find(&data.Professionals).Error; err != nil {
		return Snapshot{}, err
	}
	if err := tx.Order("id").Find(&data.Projects).Error; err != nil {
		return Snapshot{}, err
	}
	if err := tx.Order("id").Find(&data.Entries).Error; err != nil {
		return Snapshot{}, err
	}
	if err := tx.Order("id").Find(&data.PlannedAllocations).Error; err != nil {
		return Snapshot{}, err
	}
	if err := tx.Order("id").Find(&data.VacationSchedules).Error; err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}
