// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"time"
)

// JWTConfig holds signing configuration for admin session tokens.
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_TTL (default: 24h).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %v", err)
		}
		ttl = parsed
	}

	config := &JWTConfig{
		Secret:    secret,
		ExpiresIn: ttl,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.Secret))
	}
	if c.ExpiresIn < time.Minute {
		return fmt.Errorf("JWT_TTL must be at least 1 minute, got %s", c.ExpiresIn)
	}
	return nil
}
