package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAccounts(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "admin-secret")
	t.Setenv("CLIENT1_PASSWORD", "c1-secret")
	t.Setenv("CLIENT2_PASSWORD", "c2-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setAccounts(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Settings.Backend)
	assert.Equal(t, "branding_presets.json", cfg.Settings.PresetsFile)
	assert.Equal(t, "admin_settings.json", cfg.Settings.AdminSettingsFile)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, 90, cfg.Export.RetentionDays)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	setAccounts(t)
	t.Setenv("SETTINGS_BACKEND", "redis")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	t.Run("requires account secrets", func(t *testing.T) {
		t.Setenv("ADMIN_PASSWORD", "")
		t.Setenv("CLIENT1_PASSWORD", "")
		t.Setenv("CLIENT2_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
	})

	t.Run("rejects unknown settings backend", func(t *testing.T) {
		setAccounts(t)
		t.Setenv("SETTINGS_BACKEND", "s3")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects unknown session backend", func(t *testing.T) {
		setAccounts(t)
		t.Setenv("SESSION_BACKEND", "cookie")

		_, err := Load()
		require.Error(t, err)
	})
}
