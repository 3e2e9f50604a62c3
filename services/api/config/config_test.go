package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 276.0, cfg.BaselineAQI)
	assert.Equal(t, 28.6139, cfg.DefaultLat)
	assert.Equal(t, "123456", cfg.DemoPassword)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET_KEY is required")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("BASELINE_AQI", "180")
	t.Setenv("JWT_TOKEN_TTL", "1h")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 180.0, cfg.BaselineAQI)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"PORT":          "abc",
		"DEFAULT_LAT":   "120",
		"BASELINE_AQI":  "-5",
		"JWT_TOKEN_TTL": "soon",
	}
	for env, val := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "s3cret")
			t.Setenv(env, val)
			_, err := Load()
			assert.ErrorContains(t, err, "invalid "+env)
		})
	}
}
