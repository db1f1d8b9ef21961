package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 15*time.Second, cfg.AppReadTimeout)
	assert.Equal(t, "quayside-identity", cfg.AuthIssuer)
	assert.Equal(t, 7, cfg.InviteDefaultDays)
	assert.Equal(t, 1, cfg.InviteMinDays)
	assert.Equal(t, 30, cfg.InviteMaxDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsInconsistentInviteBounds(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")
	t.Setenv("INVITE_MIN_DAYS", "10")
	t.Setenv("INVITE_MAX_DAYS", "5")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
