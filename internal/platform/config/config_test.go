package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.SalaryJobInterval)
	assert.Equal(t, 2, cfg.NotificationWorkers)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SALARY_JOB_INTERVAL", "1h30m")
	t.Setenv("NOTIFICATION_WORKERS", "0")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.SalaryJobInterval)
	assert.Equal(t, 1, cfg.NotificationWorkers)
	assert.True(t, cfg.IsProduction)
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SALARY_JOB_INTERVAL", "daily")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.SalaryJobInterval)
}
