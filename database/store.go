package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hourbook/models"
	"hourbook/timesheet"
)

// Store is the record store behind the API. Range queries are inclusive of
// both calendar days.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// PlanFilter narrows planned allocation queries. Empty fields match everything.
type PlanFilter struct {
	OwnerID   string
	ProjectID *uint
}

func (s *Store) FetchEntries(ctx context.Context, ownerID string, start, end time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.WithContext(ctx).Preload("Project").
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, timesheet.DateOf(start), timesheet.DateOf(end)).
		Order("date asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (s *Store) FetchAllEntries(ctx context.Context, start, end time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.WithContext(ctx).Preload("Owner").Preload("Project").
		Where("date >= ? AND date <= ?", timesheet.DateOf(start), timesheet.DateOf(end)).
		Order("date asc, owner_id asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (s *Store) FetchProjectEntries(ctx context.Context, projectID uint, start, end time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND date >= ? AND date <= ?", projectID, timesheet.DateOf(start), timesheet.DateOf(end)).
		Order("date asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (s *Store) GetEntry(ctx context.Context, id uint) (models.Entry, error) {
	var entry models.Entry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return models.Entry{}, notFound(err)
	}
	return entry, nil
}

// SaveEntryBatch replaces the owner's unapproved entries on date with entries,
// in one transaction. Approved entries on that day are left alone.
func (s *Store) SaveEntryBatch(ctx context.Context, ownerID string, date time.Time, entries []models.Entry) error {
	day := timesheet.DateOf(date)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_id = ? AND date = ? AND approved_at IS NULL", ownerID, day).
			Delete(&models.Entry{}).Error
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		batch := make([]models.Entry, 0, len(entries))
		for _, e := range entries {
			e.ID = 0
			e.OwnerID = ownerID
			e.Date = day
			e.Owner = nil
			e.Project = nil
			e.ApprovedBy = nil
			e.ApprovedAt = nil
			batch = append(batch, e)
		}
		return tx.Create(&batch).Error
	})
}

func (s *Store) DeleteEntry(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ApproveEntry(ctx context.Context, id uint, approverID string, at time.Time) (models.Entry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return models.Entry{}, err
	}
	entry.Approve(approverID, at)
	err = s.db.WithContext(ctx).Model(&entry).
		Updates(map[string]any{"approved_by": approverID, "approved_at": at}).Error
	return entry, err
}

func (s *Store) FetchPlannedAllocations(ctx context.Context, filter PlanFilter, start, end time.Time) ([]models.PlannedAllocation, error) {
	query := s.db.WithContext(ctx).Preload("Project").
		Where("date >= ? AND date <= ?", timesheet.DateOf(start), timesheet.DateOf(end))
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var plans []models.PlannedAllocation
	err := query.Order("date asc, id asc").Find(&plans).Error
	return plans, err
}

func (s *Store) GetPlannedAllocation(ctx context.Context, id uint) (models.PlannedAllocation, error) {
	var plan models.PlannedAllocation
	if err := s.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return models.PlannedAllocation{}, notFound(err)
	}
	return plan, nil
}

func (s *Store) CreatePlannedAllocation(ctx context.Context, plan *models.PlannedAllocation) error {
	plan.Date = timesheet.DateOf(plan.Date)
	return s.db.WithContext(ctx).Create(plan).Error
}

func (s *Store) UpdatePlannedAllocation(ctx context.Context, plan *models.PlannedAllocation) error {
	if _, err := s.GetPlannedAllocation(ctx, plan.ID); err != nil {
		return err
	}
	plan.Date = timesheet.DateOf(plan.Date)
	return s.db.WithContext(ctx).Omit("Owner", "Project").Save(plan).Error
}

func (s *Store) DeletePlannedAllocation(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.PlannedAllocation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchProjects returns every project, newest first.
func (s *Store) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&projects).Error
	return projects, err
}

// FetchActiveProjects returns projects open for booking: flagged active and in
// status active, by name.
func (s *Store) FetchActiveProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND status = ?", true, models.ProjectActive).
		Order("name asc").
		Find(&projects).Error
	return projects, err
}

func (s *Store) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return models.Project{}, notFound(err)
	}
	return project, nil
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) error {
	existing, err := s.GetProject(ctx, project.ID)
	if err != nil {
		return err
	}
	project.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(project).Error
}

// ListProfessionals returns the staff ordered by first and last name.
func (s *Store) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	var professionals []models.Professional
	err := s.db.WithContext(ctx).Order("first_name asc, last_name asc").Find(&professionals).Error
	return professionals, err
}

func (s *Store) GetProfessional(ctx context.Context, id string) (models.Professional, error) {
	var professional models.Professional
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&professional).Error; err != nil {
		return models.Professional{}, notFound(err)
	}
	return professional, nil
}

func (s *Store) GetProfessionalByEmail(ctx context.Context, email string) (models.Professional, error) {
	var professional models.Professional
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&professional).Error; err != nil {
		return models.Professional{}, notFound(err)
	}
	return professional, nil
}

func (s *Store) CreateProfessional(ctx context.Context, professional *models.Professional) error {
	return s.db.WithContext(ctx).Create(professional).Error
}

func (s *Store) UpdateProfessional(ctx context.Context, professional *models.Professional) error {
	existing, err := s.GetProfessional(ctx, professional.ID)
	if err != nil {
		return err
	}
	professional.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(professional).Error
}

// DeleteProfessional removes a professional who owns no entries, plans or
// vacation schedules. Otherwise it returns ErrInUse and deletes nothing;
// deactivating is the way to retire someone with history.
func (s *Store) DeleteProfessional(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []any{&models.Entry{}, &models.PlannedAllocation{}, &models.VacationSchedule{}} {
			var count int64
			if err := tx.Model(owned).Where("owner_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrInUse
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.Professional{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FetchVacationSchedules lists an owner's schedules, latest start first.
func (s *Store) FetchVacationSchedules(ctx context.Context, ownerID string) ([]models.VacationSchedule, error) {
	var schedules []models.VacationSchedule
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date desc, id desc").
		Find(&schedules).Error
	return schedules, err
}

func (s *Store) CreateVacationSchedule(ctx context.Context, schedule *models.VacationSchedule) error {
	return s.db.WithContext(ctx).Create(schedule).Error
}
