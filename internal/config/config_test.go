package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/map")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("API_KEYS", "a, b")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 600*time.Millisecond, cfg.MarkerBlinkInterval)
	assert.Equal(t, 15.0, cfg.MarkerFocusZoom)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Equal(t, []string{"a", "b"}, cfg.APIKeys)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_InvalidRate(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/map")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("VOTE_RATE_PER_MINUTE", "0")

	_, err := LoadConfig()

	require.Error(t, err)
}

func TestLoadConfig_InvalidPoolBounds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/map")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "4")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MIN_CONNS")
}
