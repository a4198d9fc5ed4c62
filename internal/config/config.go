// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
// Environment variables use the PORTFOLIO_ prefix with underscores for
// nesting, e.g. PORTFOLIO_SERVER_PORT.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Profile   ProfileConfig   `mapstructure:"profile"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig selects zap encoding and level.
type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// ResolverConfig tunes job-description fetching. Zero values fall back to
// the resolver's built-in limits.
type ResolverConfig struct {
	UserAgent         string `mapstructure:"user_agent"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	MaxResponseBytes  int64  `mapstructure:"max_response_bytes"`
	MaxRedirects      int    `mapstructure:"max_redirects"`
	DNSTimeoutSeconds int    `mapstructure:"dns_timeout_seconds"`
}

// ProfileConfig locates the owner profile document.
type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig toggles per-client rate limiting.
type RateLimitConfig struct {
	Enabled                bool `mapstructure:"enabled"`
	CleanupIntervalMinutes int  `mapstructure:"cleanup_interval_minutes"`
}

// Secrets are read from the environment only, never from config files.
type Secrets struct {
	GeminiAPIKey string
	DatabaseURL  string
}

// Load builds a Config from defaults, an optional config file, and
// PORTFOLIO_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadSecrets pulls secret values from the environment.
func LoadSecrets() Secrets {
	return Secrets{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)
	v.SetDefault("resolver.user_agent", "portfolio-api/1.0")
	v.SetDefault("resolver.timeout_seconds", 0)
	v.SetDefault("resolver.max_response_bytes", 0)
	v.SetDefault("resolver.max_redirects", 0)
	v.SetDefault("resolver.dns_timeout_seconds", 0)
	v.SetDefault("profile.path", "profile.json")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.cleanup_interval_minutes", 5)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Profile.Path == "" {
		return fmt.Errorf("profile.path must be set")
	}
	if c.Resolver.TimeoutSeconds < 0 {
		return fmt.Errorf("resolver.timeout_seconds must not be negative")
	}
	if c.Resolver.MaxResponseBytes < 0 {
		return fmt.Errorf("resolver.max_response_bytes must not be negative")
	}
	if c.Resolver.MaxRedirects < 0 {
		return fmt.Errorf("resolver.max_redirects must not be negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval_minutes must be > 0 when rate limiting is enabled")
	}
	return nil
}

// ResolverTimeout converts the configured fetch timeout into a duration.
// Zero means "use the resolver default".
func (c ResolverConfig) ResolverTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DNSTimeout converts the configured DNS timeout into a duration.
func (c ResolverConfig) DNSTimeout() time.Duration {
	return time.Duration(c.DNSTimeoutSeconds) * time.Second
}

// CleanupInterval converts the rate-limit cleanup setting into a duration.
func (c RateLimitConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMinutes) * time.Minute
}
