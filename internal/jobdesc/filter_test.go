package jobdesc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeJobDescription_Positive(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			"classic posting sections",
			"Responsibilities: build services. Qualifications: Go, SQL.",
		},
		{
			"case insensitive",
			"RESPONSIBILITIES and QUALIFICATIONS are listed below.",
		},
		{
			"phrases",
			"About the role: we are looking for an engineer to join us.",
		},
		{
			"compensation language",
			"Salary range $150k. Benefits include health insurance.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, LooksLikeJobDescription(tt.text))
		})
	}
}

func TestLooksLikeJobDescription_Negative(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{
			"login page",
			"Sign in to continue. Enter your email and password. Forgot your password? Create an account. Terms of Service. Privacy Policy.",
		},
		{
			"error page",
			"404. The page you were trying to reach could not be found. Go back home or contact support.",
		},
		{
			"cookie wall",
			"We use cookies to improve your browsing. Accept all cookies or manage your preferences.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, LooksLikeJobDescription(tt.text))
		})
	}
}

func TestLooksLikeJobDescription_CountsDistinctTerms(t *testing.T) {
	// One term repeated any number of times is still one term.
	repeated := strings.Repeat("apply now ", 50)
	assert.False(t, LooksLikeJobDescription(repeated))

	// A second distinct term tips it over.
	assert.True(t, LooksLikeJobDescription(repeated+" salary"))
}

func TestLooksLikeJobDescription_ExactlyAtThreshold(t *testing.T) {
	assert.False(t, LooksLikeJobDescription("This mentions a candidate."))
	assert.True(t, LooksLikeJobDescription("This mentions a candidate and a position."))
}
