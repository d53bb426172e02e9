package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_BCRYPT_COST", "")
	t.Setenv("ADMIN_BOOTSTRAP_ENABLED", "")
	t.Setenv("NOTIFY_SMTP_HOST", "")
	t.Setenv("REDIS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Admin.BootstrapEnabled)
	assert.Equal(t, "", cfg.Notification.SMTPAddr())
	assert.Equal(t, 60*time.Second, cfg.Cache.DashboardTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("ADMIN_BOOTSTRAP_ENABLED", "true")
	t.Setenv("NOTIFY_SMTP_HOST", "smtp.example.com")
	t.Setenv("NOTIFY_SMTP_PORT", "2525")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Redis.Enabled)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Admin.BootstrapEnabled)
	assert.Equal(t, "smtp.example.com:2525", cfg.Notification.SMTPAddr())
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "zero")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bcrypt cost", func(t *testing.T) {
		t.Setenv("AUTH_BCRYPT_COST", "2")
		_, err := Load()
		require.Error(t, err)
	})
}
