// Package assess scores job descriptions against the site owner's profile
// and answers visitor chat messages, both through the LLM client.
package assess

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/daniel/portfolio-api/internal/jobdesc"
	"github.com/daniel/portfolio-api/internal/llm"
	"github.com/daniel/portfolio-api/internal/profile"
	"github.com/daniel/portfolio-api/internal/schemas"
)

//go:embed schema.json
var assessmentSchema string

// Service wires the job-description resolver, the LLM client, and the owner
// profile into the two user-facing operations: Assess and Chat.
type Service struct {
	resolver *jobdesc.Resolver
	client   llm.Client
	owner    *profile.Profile
	logger   *zap.Logger
}

// NewService builds a Service. The logger may be nil.
func NewService(resolver *jobdesc.Resolver, client llm.Client, owner *profile.Profile, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{resolver: resolver, client: client, owner: owner, logger: logger}
}

// Assess resolves input (pasted text or URL) into a job description and
// scores it against the owner profile. A *jobdesc.ResolverError from the
// resolve step passes through untouched so the API layer can surface its
// message and status code.
func (s *Service) Assess(ctx context.Context, input string) (*Result, error) {
	resolved, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	assessment, err := s.evaluate(ctx, resolved.Text)
	if err != nil {
		return nil, err
	}

	s.logger.Info("assessment completed",
		zap.String("input_type", string(resolved.InputType)),
		zap.Int("fit_score", assessment.FitScore),
		zap.String("verdict", string(assessment.Verdict)),
	)

	return &Result{
		Assessment:   assessment,
		InputType:    resolved.InputType,
		ExtractedURL: resolved.ExtractedURL,
	}, nil
}

// Chat answers a visitor message as the portfolio assistant.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	prompt := BuildChatPrompt(s.owner, message)
	reply, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &EvaluationError{Message: "chat generation failed", Cause: err}
	}
	return strings.TrimSpace(reply), nil
}

// evaluate runs the model in JSON mode and accepts the reply only after it
// passes the embedded schema. One salvage attempt pulls the first balanced
// JSON object out of a noisy reply before giving up.
func (s *Service) evaluate(ctx context.Context, jobText string) (*Assessment, error) {
	prompt := BuildAssessmentPrompt(s.owner, jobText)

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &EvaluationError{Message: "model call failed", Cause: err}
	}

	if verr := schemas.ValidateJSONString(assessmentSchema, raw); verr != nil {
		salvaged := llm.FirstJSONObject(raw)
		if salvaged == "" || schemas.ValidateJSONString(assessmentSchema, salvaged) != nil {
			s.logger.Warn("model returned invalid assessment", zap.Error(verr))
			return nil, &EvaluationError{Message: "model returned invalid assessment", Cause: verr}
		}
		raw = salvaged
	}

	var a Assessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, &EvaluationError{Message: "failed to parse assessment", Cause: err}
	}
	return &a, nil
}
