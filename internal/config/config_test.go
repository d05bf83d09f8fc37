package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("SESSION_PREVIOUS_SECRETS", " old-1 , ,old-2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kudos-session", cfg.SessionCookieName)
	assert.Equal(t, time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, int64(10_000_000), cfg.UploadMaxPartBytes)
	assert.Equal(t, 5, cfg.MinPasswordLength)
	assert.Equal(t, 3, cfg.RecentKudosLimit)
	assert.False(t, cfg.AllowSelfKudos)
	assert.Equal(t, []string{"old-1", "old-2"}, cfg.SessionPreviousSecrets)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		SessionSecret:      "x",
		DBDriver:           "mysql",
		SessionMaxAge:      time.Hour,
		UploadMaxPartBytes: 1,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}
