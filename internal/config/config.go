package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Forecast  ForecastConfig
	Baseline  BaselineConfig
	Scheduler SchedulerConfig
	Sheets    SheetsConfig
	Notify    NotifyConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// ForecastConfig carries the tunable planning ratios and the audit log bound.
type ForecastConfig struct {
	MinThroughputRatio float64
	MinYieldRatio      float64
	LogCapacity        int
}

// BaselineConfig identifies the facility the scheduler forecasts on a cadence.
type BaselineConfig struct {
	FacilityID  string
	HorizonDays int
}

// SchedulerConfig holds cron-related settings.
type SchedulerConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig contains configuration required to read the facility baseline
// from Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// NotifyConfig holds the optional webhook target for forecast summaries.
type NotifyConfig struct {
	WebhookURL string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Forecast: ForecastConfig{
			MinThroughputRatio: getenvFloat("FORECAST_MIN_THROUGHPUT_RATIO", 0.7),
			MinYieldRatio:      getenvFloat("FORECAST_MIN_YIELD_RATIO", 0.85),
			LogCapacity:        getenvInt("FORECAST_LOG_CAPACITY", 256),
		},
		Baseline: BaselineConfig{
			FacilityID:  os.Getenv("BASELINE_FACILITY_ID"),
			HorizonDays: getenvInt("BASELINE_HORIZON_DAYS", 14),
		},
		Scheduler: SchedulerConfig{
			CronSchedule: getenvWithDefault("FORECAST_CRON_SCHEDULE", "0 6 * * 1"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_BASELINE_ID"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "harvestplan"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and that
// the planning ratios stay inside their contractual range.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Forecast.MinThroughputRatio <= 0 || c.Forecast.MinThroughputRatio > 1 {
		return errors.New("FORECAST_MIN_THROUGHPUT_RATIO must be in (0,1]")
	}
	if c.Forecast.MinYieldRatio <= 0 || c.Forecast.MinYieldRatio > 1 {
		return errors.New("FORECAST_MIN_YIELD_RATIO must be in (0,1]")
	}
	if c.Forecast.LogCapacity <= 0 {
		return errors.New("FORECAST_LOG_CAPACITY must be > 0")
	}

	if c.Baseline.HorizonDays <= 0 {
		return errors.New("BASELINE_HORIZON_DAYS must be > 0")
	}

	if c.Scheduler.CronSchedule == "" {
		return errors.New("FORECAST_CRON_SCHEDULE must be provided")
	}
	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// Sheets, baseline facility and the webhook are optional as a group; the
	// scheduler only runs when a baseline source is fully configured.
	return nil
}

// SchedulerEnabled reports whether a baseline source is fully configured.
func (c *Config) SchedulerEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != "" && c.Baseline.FacilityID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
