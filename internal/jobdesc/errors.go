package jobdesc

import (
	"errors"
	"fmt"
)

// Failure classes attached to ResolverError, used as metrics labels and
// analytics outcome values.
const (
	FailInvalidURL         = "invalid_url"
	FailDisallowedProtocol = "disallowed_protocol"
	FailBlockedHost        = "blocked_host"
	FailRedirectBlocked    = "redirect_blocked"
	FailTooManyRedirects   = "too_many_redirects"
	FailResponseTooLarge   = "response_too_large"
	FailFetch              = "fetch_failed"
	FailContentTooShort    = "content_too_short"
	FailNotJobDescription  = "not_job_description"
)

var (
	// ErrTooManyRedirects is returned when a redirect chain exceeds the
	// fetcher's hop ceiling.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrResponseTooLarge is returned when a response declares or streams
	// more bytes than the fetcher allows.
	ErrResponseTooLarge = errors.New("response too large")
)

// BlockedError is a rejection from the SSRF validator. Reason is written for
// end users; Class is the failure class the rejection maps to.
type BlockedError struct {
	Reason string
	Class  string
}

func (e *BlockedError) Error() string {
	return e.Reason
}

// RedirectBlockedError reports a redirect hop whose target failed SSRF
// validation and was therefore never contacted.
type RedirectBlockedError struct {
	Target string
	Reason string
}

func (e *RedirectBlockedError) Error() string {
	return fmt.Sprintf("redirect blocked: %s", e.Reason)
}

// FetchError represents a network-level or HTTP-level failure while fetching
// a URL.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ResolverError is the single error shape Resolve surfaces to callers. Every
// internal failure is re-wrapped into it with a user-safe message and
// StatusCode 400: the remediation for all of them is the same, pasting the
// job description text instead of a URL.
type ResolverError struct {
	Message    string
	StatusCode int
	Class      string
}

func (e *ResolverError) Error() string {
	return e.Message
}
