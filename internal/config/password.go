// Package config provides admin credential configuration and hashing.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is specified for hashing.
const DefaultBcryptCost = 12

// AdminConfig holds the single admin credential verified by the login
// endpoint. The password itself is never stored; only its bcrypt hash.
type AdminConfig struct {
	PasswordHash string
	Pepper       string // optional global secret for additional security
}

// NewAdminConfig creates the admin credential configuration from environment
// variables. It reads ADMIN_PASSWORD_HASH (required) and optionally
// PASSWORD_PEPPER.
func NewAdminConfig() (*AdminConfig, error) {
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}
	if !strings.HasPrefix(hash, "$2") {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH does not look like a bcrypt hash")
	}

	return &AdminConfig{
		PasswordHash: hash,
		Pepper:       os.Getenv("PASSWORD_PEPPER"), // empty if not set
	}, nil
}

// VerifyPassword checks a login attempt against the stored hash (with
// optional pepper).
func (c *AdminConfig) VerifyPassword(pw string) bool {
	password := pw
	if c.Pepper != "" {
		password = pw + c.Pepper
	}

	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt (with optional pepper). Used by
// the hash-password CLI command to generate ADMIN_PASSWORD_HASH values.
func HashPassword(pw, pepper string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < 10 || cost > 14 {
		return "", fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	password := pw
	if pepper != "" {
		password = pw + pepper
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}
