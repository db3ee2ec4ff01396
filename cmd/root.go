package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hourbook/config"
	"hourbook/database"
	"hourbook/logging"
)

var rootCmd = &cobra.Command{
	Use:   "hourbook",
	Short: "Hourbook - timesheet and allocation tracking for consulting teams",
	Long: `hourbook records the hours professionals log per day, checks each day
against the eight hour minimum and reports allocation against planned hours.
Configuration is read from the environment.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(backupCmd)
}

// environment is what every subcommand needs before doing its work.
type environment struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB
}

// bootstrap loads config, builds the logger and opens, migrates and seeds
// the database.
func bootstrap() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Init(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return &environment{cfg: cfg, log: log, db: db}, nil
}

func (e *environment) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
