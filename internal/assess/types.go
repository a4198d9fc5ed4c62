package assess

import (
	"fmt"

	"github.com/daniel/portfolio-api/internal/jobdesc"
)

// Verdict is the model's overall call on the match.
type Verdict string

const (
	VerdictStrongFit  Verdict = "strong_fit"
	VerdictPartialFit Verdict = "partial_fit"
	VerdictWeakFit    Verdict = "weak_fit"
)

// Assessment is the schema-validated model output for one job description.
type Assessment struct {
	FitScore  int      `json:"fit_score"`
	Verdict   Verdict  `json:"verdict"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Summary   string   `json:"summary"`
}

// Result pairs an assessment with how its job description was obtained.
type Result struct {
	Assessment   *Assessment       `json:"assessment"`
	InputType    jobdesc.InputType `json:"input_type"`
	ExtractedURL string            `json:"extracted_url,omitempty"`
}

// EvaluationError represents a failure in the model call or in validating
// its output. Distinct from jobdesc.ResolverError, which passes through
// untouched: resolver failures are the caller's fault, evaluation failures
// are ours.
type EvaluationError struct {
	Message string
	Cause   error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assessment error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assessment error: %s", e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
