package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 0, cfg.Fetch.Retries)
	assert.Equal(t, int64(5<<20), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("FETCH_RETRIES", "2")
	t.Setenv("APP_FETCH_TIMEOUT", "3s")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Fetch.Retries = -1 }},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheBackendRedis; c.Cache.Redis.Addr = "" }},
		{"no workers", func(c *Config) { c.Queue.Workers = 0 }},
		{"bad rate limit", func(c *Config) { c.RateLimit.Requests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(viper.New())
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfigCacheDisabled(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)
	cfg.Cache.Enabled = false
	cfg.Cache.Backend = "whatever"
	assert.NoError(t, validateConfig(cfg))
}
