package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	require.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiry)
	require.True(t, cfg.CookieSecure)
	require.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "48h")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("PORT", "9999")

	cfg := Load()
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenExpiry)
	require.Equal(t, 48*time.Hour, cfg.RefreshTokenExpiry)
	require.False(t, cfg.CookieSecure)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-duration")
	cfg := Load()
	require.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
}
