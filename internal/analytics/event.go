package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Outcome constants for assessment events
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Event is one recorded fit-assessment request.
type Event struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	InputType    string    `json:"input_type"`
	ExtractedURL *string   `json:"extracted_url,omitempty"`
	Outcome      string    `json:"outcome"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	Verdict      *string   `json:"verdict,omitempty"`
	FitScore     *int      `json:"fit_score,omitempty"`
	DurationMs   int       `json:"duration_ms"`
}

// CompletedEvent builds the event for an assessment that produced a verdict.
func CompletedEvent(inputType, extractedURL, verdict string, fitScore int, duration time.Duration) Event {
	ev := Event{
		InputType:  inputType,
		Outcome:    OutcomeCompleted,
		Verdict:    &verdict,
		FitScore:   &fitScore,
		DurationMs: int(duration.Milliseconds()),
	}
	if extractedURL != "" {
		ev.ExtractedURL = &extractedURL
	}
	return ev
}

// FailureEvent builds the event for a request that ended in a rejection or an
// internal failure. outcome should be OutcomeRejected or OutcomeFailed.
func FailureEvent(outcome, inputType, extractedURL, message string, duration time.Duration) Event {
	ev := Event{
		InputType:  inputType,
		Outcome:    outcome,
		DurationMs: int(duration.Milliseconds()),
	}
	if extractedURL != "" {
		ev.ExtractedURL = &extractedURL
	}
	if message != "" {
		ev.ErrorMessage = &message
	}
	return ev
}

// ListOptions holds pagination for listing events
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultPageSize and MaxPageSize bound ListAssessments pages.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Normalized clamps paging values into the allowed range.
func (o ListOptions) Normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	if o.Limit > MaxPageSize {
		o.Limit = MaxPageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
