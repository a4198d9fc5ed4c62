// Package profile loads the site owner's professional profile, the document
// every job-fit assessment is scored against.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Profile describes the portfolio owner. The summary and skills carry most
// of the assessment signal; experience adds concrete evidence.
type Profile struct {
	Name       string            `json:"name" validate:"required"`
	Title      string            `json:"title" validate:"required"`
	Location   string            `json:"location,omitempty"`
	Summary    string            `json:"summary" validate:"required"`
	Skills     []string          `json:"skills" validate:"required,min=1"`
	Highlights []string          `json:"highlights,omitempty"`
	Experience []Position        `json:"experience,omitempty" validate:"omitempty,dive"`
	Links      map[string]string `json:"links,omitempty"`
}

// Position is one role in the owner's work history.
type Position struct {
	Company string   `json:"company" validate:"required"`
	Role    string   `json:"role" validate:"required"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// LoadError represents an error during file I/O, JSON parsing, or
// validation of a profile file.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads and validates a profile from a JSON file
func Load(path string) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var p Profile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	if err := p.Validate(); err != nil {
		return nil, &LoadError{
			Message: "profile validation failed",
			Cause:   err,
		}
	}

	return &p, nil
}

// Validate validates the profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// PromptText renders the profile as plain text for inclusion in an LLM
// prompt. Links are omitted; they add tokens without assessment signal.
func (p *Profile) PromptText() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - %s\n", p.Name, p.Title)
	if p.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", p.Location)
	}
	fmt.Fprintf(&sb, "\nSummary:\n%s\n", p.Summary)

	fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(p.Skills, ", "))

	if len(p.Highlights) > 0 {
		sb.WriteString("\nHighlights:\n")
		for _, h := range p.Highlights {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}

	if len(p.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, pos := range p.Experience {
			fmt.Fprintf(&sb, "%s at %s", pos.Role, pos.Company)
			if pos.Start != "" {
				fmt.Fprintf(&sb, " (%s - %s)", pos.Start, orPresent(pos.End))
			}
			sb.WriteString("\n")
			for _, b := range pos.Bullets {
				fmt.Fprintf(&sb, "- %s\n", b)
			}
		}
	}

	return sb.String()
}

func orPresent(end string) string {
	if end == "" {
		return "present"
	}
	return end
}
