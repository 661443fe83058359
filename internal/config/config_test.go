package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Capacity)
	assert.Equal(t, 4, cfg.PreloadConcurrency)
	assert.Equal(t, SourceFS, cfg.Source)
	assert.Equal(t, "./assets", cfg.AssetRoot)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Preload)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RESCACHE_CAPACITY", "16")
	t.Setenv("RESCACHE_SOURCE", "redis")
	t.Setenv("RESCACHE_PRELOAD", "a.png,b.wav")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("REDIS_RETRY_INTERVAL", "250ms")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Capacity)
	assert.Equal(t, SourceRedis, cfg.Source)
	assert.Equal(t, []string{"a.png", "b.wav"}, cfg.Preload)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 250*time.Millisecond, cfg.RedisRetryInterval)
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RESCACHE_ASSET_ROOT=/srv/assets\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RESCACHE_ASSET_ROOT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.AssetRoot)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("RESCACHE_CAPACITY", "lots")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrParsingConfig)
}

func TestValidate(t *testing.T) {
	valid := Config{Capacity: 1, PreloadConcurrency: 1, Source: SourceFS, AssetRoot: "."}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }},
		{"zero preload concurrency", func(c *Config) { c.PreloadConcurrency = 0 }},
		{"unknown source", func(c *Config) { c.Source = "s3" }},
		{"fs without root", func(c *Config) { c.AssetRoot = "" }},
		{"redis without url", func(c *Config) { c.Source = SourceRedis }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
