package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, "session.db", cfg.CachePath)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.GuardReset)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SESSIONKIT_API_BASE_URL", "https://api.example.com")
	t.Setenv("SESSIONKIT_HTTP_TIMEOUT", "3s")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}
