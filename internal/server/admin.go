package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/daniel/portfolio-api/internal/analytics"
)

// LoginRequest is the payload for POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResponse carries the bearer token for subsequent admin calls.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// AssessmentListResponse is the paginated admin view of assessment events.
type AssessmentListResponse struct {
	Events []analytics.Event `json:"events"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// handleAdminLogin verifies the admin password and issues a JWT.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if !s.admin.VerifyPassword(req.Password) {
		credErr := &ErrInvalidCredentials{}
		s.logger.Warn("admin login rejected", zap.String("client", s.extractClientID(r)))
		s.errorResponse(w, HTTPStatus(credErr), credErr.Error())
		return
	}

	token, err := s.jwtService.GenerateToken()
	if err != nil {
		s.logger.Error("generating admin token", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtService.config.ExpiresIn.Seconds()),
	})
}

// handleListAssessments returns recorded assessment events, newest first.
// Bad paging parameters fall back to defaults rather than erroring.
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	var opts analytics.ListOptions
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	opts = opts.Normalized()

	events, total, err := s.store.ListAssessments(r.Context(), opts)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusServiceUnavailable {
			s.errorResponse(w, status, "Analytics storage is not configured")
			return
		}
		s.logger.Error("listing assessments", zap.Error(err))
		s.errorResponse(w, status, "Failed to list assessments")
		return
	}

	if events == nil {
		events = []analytics.Event{}
	}

	s.jsonResponse(w, http.StatusOK, AssessmentListResponse{
		Events: events,
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}
