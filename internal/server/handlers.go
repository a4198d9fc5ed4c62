package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/daniel/portfolio-api/internal/analytics"
	"github.com/daniel/portfolio-api/internal/jobdesc"
	"github.com/daniel/portfolio-api/internal/logger"
	"github.com/daniel/portfolio-api/internal/metrics"
)

// maxRequestBody caps request bodies well above the largest legal prompt so
// oversized payloads fail fast instead of buffering.
const maxRequestBody = 256 << 10

// AssessRequest is the payload for POST /api/assess. Prompt is either a
// pasted job description or a URL pointing at one.
type AssessRequest struct {
	Prompt string `json:"prompt" validate:"required,max=50000"`
}

// ChatRequest is the payload for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse is the reply payload for POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// handleAssess resolves the prompt into a job description and scores it
// against the owner profile.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.service.Assess(r.Context(), req.Prompt)
	if err != nil {
		s.assessFailure(r.Context(), w, req.Prompt, err, time.Since(start))
		return
	}

	elapsed := time.Since(start)
	inputType := string(result.InputType)

	metrics.ObserveAssessment(inputType, analytics.OutcomeCompleted, elapsed)

	event := analytics.CompletedEvent(inputType, result.ExtractedURL,
		string(result.Assessment.Verdict), result.Assessment.FitScore, elapsed)
	if recErr := s.store.RecordAssessment(r.Context(), event); recErr != nil {
		s.logger.Error("recording assessment", zap.Error(recErr))
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// assessFailure records and reports a failed assessment. Resolver rejections
// surface their own message and status; everything else gets a generic 5xx
// message so internal details stay out of responses.
func (s *Server) assessFailure(ctx context.Context, w http.ResponseWriter, input string, err error, elapsed time.Duration) {
	inputType := string(jobdesc.InputTypeText)
	extractedURL := ""
	if jobdesc.IsURLInput(input) {
		inputType = string(jobdesc.InputTypeURL)
		extractedURL = strings.TrimSpace(input)
	}

	outcome := analytics.OutcomeFailed
	message := "Could not complete the assessment. Please try again."

	var resolverErr *jobdesc.ResolverError
	if errors.As(err, &resolverErr) {
		outcome = analytics.OutcomeRejected
		message = resolverErr.Message
		metrics.ObserveResolverFailure(resolverErr.Class)
	}

	metrics.ObserveAssessment(inputType, outcome, elapsed)

	event := analytics.FailureEvent(outcome, inputType, extractedURL,
		logger.TruncateForLog(err.Error(), 500), elapsed)
	if recErr := s.store.RecordAssessment(ctx, event); recErr != nil {
		s.logger.Error("recording assessment failure", zap.Error(recErr))
	}

	s.logger.Warn("assessment failed",
		zap.String("input_type", inputType),
		zap.String("outcome", outcome),
		zap.Error(err),
	)

	s.errorResponse(w, HTTPStatus(err), message)
}

// handleChat answers a visitor message as the portfolio assistant.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	reply, err := s.service.Chat(r.Context(), req.Message)
	if err != nil {
		metrics.ObserveChat("error")
		s.logger.Error("chat failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Could not generate a reply. Please try again.")
		return
	}

	metrics.ObserveChat("ok")
	s.jsonResponse(w, http.StatusOK, ChatResponse{Reply: reply})
}

// extractValidationErrors formats validation errors for API responses
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
