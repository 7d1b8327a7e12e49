// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`

	// Commentary runs offline when no key is set
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIURL         string        `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnalysisTimeout   time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"30s"`
	AnalysisRetention time.Duration `env:"ANALYSIS_RETENTION" envDefault:"1h"`

	// Empty RedisAddr selects the in-memory cache
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"6h"`

	RateLimitCapacity int           `env:"RATE_LIMIT_CAPACITY" envDefault:"5"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.RateLimitCapacity <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive: %d", c.RateLimitCapacity))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive: %s", c.RateLimitWindow))
	}
	if c.AnalysisTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ANALYSIS_TIMEOUT must be positive: %s", c.AnalysisTimeout))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
