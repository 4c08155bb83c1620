package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, time.Hour, cfg.Media.StreamTokenTTL.Std())
	assert.Equal(t, 30*time.Minute, cfg.Media.SweepInterval.Std())
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL.Std())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL.Std())
	assert.Equal(t, "vodguard", cfg.Auth.Issuer)
	assert.Equal(t, "vodguard-api", cfg.Auth.Audience)
	assert.NoError(t, cfg.Validate())
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var d Duration
	require.NoError(t, yaml.Unmarshal([]byte(`90s`), &d))
	assert.Equal(t, 90*time.Second, d.Std())

	assert.Error(t, yaml.Unmarshal([]byte(`not-a-duration`), &d))
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  address: ":9999"
media:
  root: /srv/media
  stream_token_ttl: 30m
auth:
  jwt_secret: test-secret
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "/srv/media", cfg.Media.Root)
	assert.Equal(t, 30*time.Minute, cfg.Media.StreamTokenTTL.Std())
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	// Untouched sections keep defaults.
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL.Std())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VODGUARD_JWT_SECRET", "env-secret")
	t.Setenv("VODGUARD_MEDIA_ROOT", "/env/media")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/env/media", cfg.Media.Root)
}

func TestValidate_RateLimitingDisabled_AllowsZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimiting.Enabled = false
	cfg.RateLimiting.RequestsPerSecond = 0
	cfg.RateLimiting.Burst = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected config to be valid when rate limiting disabled, got error: %v", err)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty server address", func(c *Config) { c.Server.Address = "" }, "server.address"},
		{"empty media root", func(c *Config) { c.Media.Root = "" }, "media.root"},
		{"zero chunk size", func(c *Config) { c.Media.ChunkSize = 0 }, "media.chunk_size"},
		{"zero stream token ttl", func(c *Config) { c.Media.StreamTokenTTL = 0 }, "media.stream_token_ttl"},
		{"zero sweep interval", func(c *Config) { c.Media.SweepInterval = 0 }, "media.sweep_interval"},
		{"empty jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret"},
		{"empty issuer", func(c *Config) { c.Auth.Issuer = "" }, "auth.issuer"},
		{"empty audience", func(c *Config) { c.Auth.Audience = "" }, "auth.audience"},
		{"zero access ttl", func(c *Config) { c.Auth.AccessTokenTTL = 0 }, "auth.access_token_ttl"},
		{"zero refresh ttl", func(c *Config) { c.Auth.RefreshTokenTTL = 0 }, "auth.refresh_token_ttl"},
		{
			"bad sample rate",
			func(c *Config) { c.Tracing.Enabled = true; c.Tracing.SampleRate = 2 },
			"tracing.sample_rate",
		},
		{
			"rate limit without rps",
			func(c *Config) { c.RateLimiting.Enabled = true; c.RateLimiting.RequestsPerSecond = 0 },
			"requests_per_second",
		},
		{
			"rate limit without burst",
			func(c *Config) { c.RateLimiting.Enabled = true; c.RateLimiting.Burst = 0 },
			"burst",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
