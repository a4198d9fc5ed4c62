package jobdesc

import "strings"

// jobKeywords is the fixed vocabulary used to decide whether extracted text
// looks like a job posting. Matching is case-insensitive substring search;
// multi-word phrases must appear contiguously.
var jobKeywords = []string{
	"responsibilities",
	"qualifications",
	"requirements",
	"about the role",
	"about this role",
	"what you'll do",
	"what you will do",
	"who you are",
	"we're looking for",
	"we are looking for",
	"job description",
	"employment",
	"full-time",
	"part-time",
	"salary",
	"compensation",
	"benefits",
	"equal opportunity",
	"years of experience",
	"skills",
	"apply",
	"candidate",
	"position",
	"remote",
}

// LooksLikeJobDescription reports whether text contains at least
// MinJobDescriptionKeywords distinct vocabulary terms. The scan stops as
// soon as the threshold is met. This is a cheap guard against burning model
// tokens on login pages, error pages, and cookie walls, not a classifier;
// borderline pages are let through for the model to judge.
func LooksLikeJobDescription(text string) bool {
	lower := strings.ToLower(text)
	found := 0
	for _, keyword := range jobKeywords {
		if strings.Contains(lower, keyword) {
			found++
			if found >= MinJobDescriptionKeywords {
				return true
			}
		}
	}
	return false
}
