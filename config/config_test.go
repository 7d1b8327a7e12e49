package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_PRETTY", "OPENAI_API_KEY", "OPENAI_API_URL", "OPENAI_MODEL",
		"ANALYSIS_TIMEOUT", "ANALYSIS_RETENTION", "REDIS_ADDR", "CACHE_TTL",
		"RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.OpenAIURL)
	assert.Equal(t, 30*time.Second, cfg.AnalysisTimeout)
	assert.Equal(t, time.Hour, cfg.AnalysisRetention)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("RATE_LIMIT_CAPACITY", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.RateLimitCapacity)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:              8080,
		RateLimitCapacity: 5,
		RateLimitWindow:   time.Minute,
		AnalysisTimeout:   time.Second,
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Port = 70000
	bad.RateLimitCapacity = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "RATE_LIMIT_CAPACITY")
	assert.NotContains(t, err.Error(), "RATE_LIMIT_WINDOW")
}
