package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "America/Sao_Paulo", cfg.Business.Timezone)
	assert.Equal(t, "BRL", cfg.Business.DefaultCurrency)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=rental_engine sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/rentals?sslmode=disable")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_SETTINGS_TTL", "1m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BUSINESS_DEFAULT_CURRENCY", "USD")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://app:secret@db:5432/rentals?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.SettingsTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "USD", cfg.Business.DefaultCurrency)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Database:  DatabaseConfig{Host: "localhost", Name: "rental_engine", MaxOpenConns: 5},
			Scheduler: SchedulerConfig{ExpireQuotes: "0 5 0 * * *"},
			Business:  BusinessConfig{Timezone: "UTC", DefaultCurrency: "BRL"},
			Health:    HealthConfig{Timeout: time.Second},
		}
	}

	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, errorContains: "SERVER_PORT"},
		{name: "missing database", mutate: func(c *Config) { c.Database.Host = "" }, errorContains: "DATABASE_URL"},
		{name: "bad timezone", mutate: func(c *Config) { c.Business.Timezone = "Mars/Olympus" }, errorContains: "BUSINESS_TIMEZONE"},
		{name: "bad currency", mutate: func(c *Config) { c.Business.DefaultCurrency = "GBP" }, errorContains: "BUSINESS_DEFAULT_CURRENCY"},
		{name: "bad cron", mutate: func(c *Config) { c.Scheduler.ExpireQuotes = "every day" }, errorContains: "SCHEDULER_EXPIRE_QUOTES"},
		{name: "descriptor cron", mutate: func(c *Config) { c.Scheduler.ExpireQuotes = "@daily" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
