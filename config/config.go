package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Environment    string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	JWTExpiration  time.Duration
	ServerPort     string
	LogLevel       string
	LogFormat      string
	Location       *time.Location
}

const developmentSecret = "development-only-secret-change-me"

// Load reads the configuration from the environment. JWT_SECRET is required
// unless APP_ENV is "development".
func Load() (*Config, error) {
	cfg := &Config{
		Environment:    getEnv("APP_ENV", "production"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/hourbook"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiration:  24 * time.Hour,
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Location:       time.UTC,
	}

	var missing, invalid []string

	if cfg.JWTSecret == "" {
		if cfg.IsDevelopment() {
			cfg.JWTSecret = developmentSecret
		} else {
			missing = append(missing, "JWT_SECRET")
		}
	}

	if value := getEnv("JWT_EXPIRATION", ""); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "JWT_EXPIRATION")
		} else {
			cfg.JWTExpiration = ttl
		}
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		invalid = append(invalid, "DATABASE_DRIVER")
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		invalid = append(invalid, "LOG_FORMAT")
	}

	if name := getEnv("TIMEZONE", ""); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			invalid = append(invalid, "TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Today returns the current calendar day in the configured time zone.
func (c *Config) Today(now time.Time) time.Time {
	y, m, d := now.In(c.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
