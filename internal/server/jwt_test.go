package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/portfolio-api/internal/config"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-min-32"

func setupTestJWTService(_ *testing.T, expiresIn time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:    testJWTSecret,
		ExpiresIn: expiresIn,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	token, err := service.GenerateToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts separated by dots")
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	token, err := service.GenerateToken()
	require.NoError(t, err)

	assert.NoError(t, service.ValidateToken(token))
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	assert.Error(t, service.ValidateToken(""))
}

func TestJWTService_ValidateToken_Tampered(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	token, err := service.GenerateToken()
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	assert.Error(t, service.ValidateToken(tampered))
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)
	other := NewJWTService(&config.JWTConfig{
		Secret:    "a-completely-different-secret-at-32-bytes",
		ExpiresIn: time.Hour,
	})

	token, err := other.GenerateToken()
	require.NoError(t, err)

	assert.Error(t, service.ValidateToken(token))
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := setupTestJWTService(t, -time.Minute)

	token, err := service.GenerateToken()
	require.NoError(t, err)

	assert.Error(t, service.ValidateToken(token))
}

func TestJWTService_ValidateToken_NoneAlgorithm(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Error(t, service.ValidateToken(token), "tokens signed with none must be rejected")
}

func TestJWTService_ValidateToken_WrongRole(t *testing.T) {
	service := setupTestJWTService(t, time.Hour)

	claims := &Claims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	assert.Error(t, service.ValidateToken(token), "only the admin role may pass")
}
