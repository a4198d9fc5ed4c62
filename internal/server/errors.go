package server

import (
	"errors"
	"net/http"

	"github.com/daniel/portfolio-api/internal/analytics"
	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/jobdesc"
)

// ErrInvalidCredentials indicates a failed admin login attempt.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var resolverErr *jobdesc.ResolverError
	if errors.As(err, &resolverErr) {
		return resolverErr.StatusCode
	}

	var evalErr *assess.EvaluationError
	if errors.As(err, &evalErr) {
		return http.StatusBadGateway
	}

	if errors.Is(err, analytics.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}

	var invalidCreds *ErrInvalidCredentials
	if errors.As(err, &invalidCreds) {
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}
