package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:              "8080",
		Storage:           StorageMemory,
		DBName:            "vibes",
		AppTimezone:       "UTC",
		AppEpoch:          "2024-01-01",
		AppLogLevel:       "info",
		ReportDefaultDays: 92,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("STORAGE", "memory")
	t.Setenv("RATE_LIMIT_REQUESTS", "100")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("APP_EPOCH", "2024-01-01")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("REPORT_DEFAULT_DAYS", "92")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 92, cfg.ReportDefaultDays)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.CacheEnabled())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "Success: defaults", mutate: func(c *Config) {}},
		{name: "Error: unknown storage", mutate: func(c *Config) { c.Storage = "sqlite" }, wantErr: ErrInvalidStorage},
		{name: "Error: postgres without database", mutate: func(c *Config) { c.Storage = StoragePostgres; c.DBName = "" }, wantErr: ErrMissingDBName},
		{name: "Error: bad epoch", mutate: func(c *Config) { c.AppEpoch = "01/01/2024" }, wantErr: ErrInvalidEpoch},
		{name: "Error: zero report days", mutate: func(c *Config) { c.ReportDefaultDays = 0 }, wantErr: ErrInvalidReportDays},
		{name: "Error: zero rate limit window", mutate: func(c *Config) { c.RateLimitWindow = 0 }, wantErr: ErrInvalidRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Error: unknown timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.AppTimezone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Calendar(t *testing.T) {
	cfg := validConfig()
	cfg.AppTimezone = "Europe/Paris"
	cfg.AppEpoch = "2024-03-01"

	cal := cfg.Calendar()
	assert.Equal(t, "2024-03-01", cal.ISO(0))
	// crosses the spring DST change on 2024-03-31
	assert.Equal(t, "2024-04-10", cal.ISO(40))
}

func TestConfig_DatabaseDSN(t *testing.T) {
	cfg := validConfig()
	cfg.DBUser = "vibes"
	cfg.DBPassword = "secret"
	cfg.DBHost = "db"
	cfg.DBPort = "5432"
	cfg.DBSSLMode = "disable"

	assert.Equal(t, "postgres://vibes:secret@db:5432/vibes?sslmode=disable", cfg.DatabaseDSN())
}
