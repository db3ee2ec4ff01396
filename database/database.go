package database

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hourbook/logging"
	"hourbook/models"
)

// DefaultAdvancedEmail is the professional seeded into an empty database so the
// first manager can issue tokens and register the rest of the staff.
const DefaultAdvancedEmail = "admin@localhost"

// Open connects to the configured database. Driver is "postgres" or "sqlite".
func Open(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logging.Gorm(log),
	})
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Professional{},
		&models.Project{},
		&models.Entry{},
		&models.PlannedAllocation{},
		&models.VacationSchedule{},
	)
}

// SeedDefaultAdvanced creates the bootstrap manager when no professional exists.
// It returns the seeded professional, or nil when nothing was created.
func SeedDefaultAdvanced(db *gorm.DB, log zerolog.Logger) (*models.Professional, error) {
	var count int64
	if err := db.Model(&models.Professional{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	admin := models.Professional{
		Email:     DefaultAdvancedEmail,
		FirstName: "Administrator",
		Role:      models.RoleAdvanced,
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}

	log.Info().Str("professional_id", admin.ID).Str("email", admin.Email).Msg("default advanced professional created")
	return &admin, nil
}

// Init opens, migrates and seeds in one step.
func Init(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := Open(driver, dsn, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	if _, err := SeedDefaultAdvanced(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
