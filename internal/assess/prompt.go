package assess

import (
	"fmt"

	"github.com/daniel/portfolio-api/internal/llm"
	"github.com/daniel/portfolio-api/internal/profile"
)

// Prompt size caps keep token spend bounded; anything past them is cut.
const (
	maxProfileChars = 6000
	maxJobChars     = 12000
	maxChatChars    = 2000
)

// BuildAssessmentPrompt constructs the fit-evaluation prompt from the owner
// profile and the resolved job description text.
func BuildAssessmentPrompt(owner *profile.Profile, jobText string) string {
	schema := llm.ExtractionSchema{
		Name: "FitAssessment",
		Description: fmt.Sprintf(`You are a pragmatic technical recruiter evaluating how well a specific candidate fits a job posting.
Be honest: missing hard requirements lower the score, adjacent experience only partially compensates.
Score 80-100 only when the core requirements clearly match.

Candidate profile:
"""
%s
"""`, truncateChars(owner.PromptText(), maxProfileChars)),
		Fields: []llm.SchemaField{
			{Name: "fit_score", Type: "number", Description: "0-100 overall match", Required: true},
			{Name: "verdict", Type: "string", Description: `one of "strong_fit", "partial_fit", "weak_fit"`, Required: true},
			{Name: "strengths", Type: "[]string", Description: "up to 8 concrete matches between profile and posting", Required: true},
			{Name: "gaps", Type: "[]string", Description: "up to 8 requirements the profile does not cover", Required: true},
			{Name: "summary", Type: "string", Description: "2-3 sentence plain-language summary", Required: true},
		},
	}

	return llm.BuildExtractionPrompt(schema, truncateChars(jobText, maxJobChars))
}

// BuildChatPrompt constructs the portfolio-assistant prompt for a visitor
// message.
func BuildChatPrompt(owner *profile.Profile, message string) string {
	return fmt.Sprintf(`You are the assistant on %s's portfolio website. Answer questions about %s's background, skills, and experience using only the profile below. If a question is unrelated to the portfolio, say so briefly and steer back.

Profile:
"""
%s
"""

Visitor message:
"""
%s
"""

Reply in plain text, no markdown, at most 120 words.`,
		owner.Name, owner.Name,
		truncateChars(owner.PromptText(), maxProfileChars),
		truncateChars(message, maxChatChars))
}

// truncateChars cuts s to at most n runes without splitting a rune.
func truncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
