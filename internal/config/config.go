// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var (
	ErrInvalidStorage    = errors.New("STORAGE must be memory or postgres")
	ErrInvalidEpoch      = errors.New("APP_EPOCH must be a YYYY-MM-DD date")
	ErrInvalidReportDays = errors.New("REPORT_DEFAULT_DAYS must be between 1 and 3650")
	ErrInvalidRateLimit  = errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	ErrMissingDBName     = errors.New("DB_NAME is required with postgres storage")
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	Storage string `envconfig:"STORAGE" default:"memory"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"vibes"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Redis is optional: an empty host disables the snapshot cache and rate limiter.
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`
	// AppEpoch is the calendar date of global day 0.
	AppEpoch string `envconfig:"APP_EPOCH" default:"2024-01-01"`

	ReportDefaultDays int    `envconfig:"REPORT_DEFAULT_DAYS" default:"92"`
	ExportDir         string `envconfig:"EXPORT_DIR" default:"exports"`
	// ExportCron is a standard 5-field cron expression; empty disables the schedule.
	ExportCron string `envconfig:"EXPORT_CRON" default:"0 7 * * 1"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("could not read .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DBName == "" {
			return ErrMissingDBName
		}
	default:
		return ErrInvalidStorage
	}

	if _, err := time.Parse(domain.ISODate, c.AppEpoch); err != nil {
		return ErrInvalidEpoch
	}
	if _, err := time.LoadLocation(c.AppTimezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	if c.ReportDefaultDays < 1 || c.ReportDefaultDays > domain.MaxTotalDays {
		return ErrInvalidReportDays
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Calendar builds the day-index calendar from APP_EPOCH and APP_TIMEZONE.
// Validate must have succeeded first.
func (c *Config) Calendar() domain.Calendar {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		loc = time.UTC
	}
	epoch, err := time.ParseInLocation(domain.ISODate, c.AppEpoch, loc)
	if err != nil {
		epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	}
	return domain.NewCalendar(epoch, loc)
}

// SetupLogging applies the level and formatter to the global logrus logger.
func (c *Config) SetupLogging() {
	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(c.AppLogLevel)
	if err != nil {
		log.WithField("level", c.AppLogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
