package jobdesc

import (
	"regexp"
	"strings"
)

var urlInputRe = regexp.MustCompile(`(?i)^https?://`)

// IsURLInput reports whether the trimmed input starts with an http or https
// scheme and should be treated as a URL to fetch rather than pasted text.
// Anything else, including other schemes and prose that merely contains a
// URL, is treated as text.
func IsURLInput(input string) bool {
	return urlInputRe.MatchString(strings.TrimSpace(input))
}
