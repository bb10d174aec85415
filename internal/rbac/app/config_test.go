package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "warden", cfg.Issuer)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 15*time.Minute, cfg.AccessTTL)
		require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
		require.Equal(t, 5, cfg.LockoutThreshold)
		require.Equal(t, 15*time.Minute, cfg.LockoutDuration)
		require.Empty(t, cfg.RedisAddr)
		require.False(t, cfg.IsProduction())
	})

	t.Run("prefixed and bare names", func(t *testing.T) {
		t.Setenv("WARDEN_ISSUER", "idp.example")
		t.Setenv("WARDEN_AUDIENCE", "web,mobile")
		t.Setenv("PORT", "9090")
		t.Setenv("ENV", "production")
		t.Setenv("WARDEN_LOCKOUT_DURATION", "1m")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "idp.example", cfg.Issuer)
		require.Equal(t, []string{"web", "mobile"}, cfg.Audience)
		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, time.Minute, cfg.LockoutDuration)
		require.True(t, cfg.IsProduction())
	})

	t.Run("prefixed wins", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("WARDEN_PORT", "7070")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 7070, cfg.Port)
	})

	t.Run("unparsable duration", func(t *testing.T) {
		t.Setenv("WARDEN_ACCESS_TTL", "soon")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		Issuer:     "warden",
		Port:       8080,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	}
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty issuer", func(c *Config) { c.Issuer = "" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"refresh shorter than access", func(c *Config) { c.RefreshTTL = time.Minute }},
		{"partial admin seed", func(c *Config) { c.AdminUsername = "root" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
