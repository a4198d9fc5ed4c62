// Package jobdesc turns user-supplied job-description input, either pasted
// text or a URL, into plain text suitable for prompting a model. URL inputs
// are fetched with SSRF validation on every hop, bounded time and size, and
// a heuristic check that the page actually contains a job posting.
package jobdesc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Bounds enforced by the resolver pipeline.
const (
	// MaxRedirects is the redirect hop ceiling per fetch.
	MaxRedirects = 5
	// FetchTimeout spans an entire fetch including all redirect hops.
	FetchTimeout = 10 * time.Second
	// MaxResponseSize caps response bodies, declared or streamed.
	MaxResponseSize = 1 << 20 // 1 MiB
	// MinExtractedContentLength is the minimum number of characters the
	// extracted text must have to be usable.
	MinExtractedContentLength = 100
	// MinJobDescriptionKeywords is how many distinct vocabulary terms the
	// extracted text must contain to pass the relevance filter.
	MinJobDescriptionKeywords = 2
	// DefaultDNSTimeout bounds each DNS lookup during SSRF validation.
	DefaultDNSTimeout = 5 * time.Second
)

// guidanceSuffix is appended to every user-facing resolver failure, since
// pasting the text directly always works.
const guidanceSuffix = " Please provide the job description text directly."

// InputType records how the resolver obtained the content.
type InputType string

const (
	InputTypeText InputType = "text"
	InputTypeURL  InputType = "url"
)

// ResolvedContent is the resolver's successful output.
type ResolvedContent struct {
	// Text is the job description: the input itself for text inputs, the
	// extracted page text for URL inputs.
	Text      string    `json:"text"`
	InputType InputType `json:"input_type"`
	// ExtractedURL is the trimmed URL that was fetched. Empty for text
	// inputs.
	ExtractedURL string `json:"extracted_url,omitempty"`
}

// Options configures a Resolver. Zero values fall back to the package
// defaults.
type Options struct {
	// HTTPClient is the transport for URL fetches.
	HTTPClient *http.Client
	// DNS is the lookup capability for SSRF validation. Leaving it nil
	// fails closed: every non-literal hostname is rejected.
	DNS          IPResolver
	UserAgent    string
	MaxBytes     int64
	Timeout      time.Duration
	MaxRedirects int
	DNSTimeout   time.Duration
	Logger       *zap.Logger
}

// Resolver classifies input as text or URL and, for URLs, runs the full
// validate-fetch-extract-filter pipeline. Text inputs are returned as-is
// with no network activity of any kind.
type Resolver struct {
	validator *Validator
	fetcher   *Fetcher
	logger    *zap.Logger
}

// NewResolver builds a Resolver. Pass net.DefaultResolver as the DNS option
// in production; tests inject stubs for both DNS and HTTP.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validator := &Validator{DNS: opts.DNS, DNSTimeout: opts.DNSTimeout}
	fetcher := &Fetcher{
		Client:       opts.HTTPClient,
		Validator:    validator,
		UserAgent:    opts.UserAgent,
		MaxBytes:     opts.MaxBytes,
		Timeout:      opts.Timeout,
		MaxRedirects: opts.MaxRedirects,
	}
	return &Resolver{validator: validator, fetcher: fetcher, logger: logger}
}

// SystemDNS returns the process-wide resolver as an IPResolver.
func SystemDNS() IPResolver {
	return net.DefaultResolver
}

// Resolve turns input into job-description text. All failures come back as
// *ResolverError with status 400 and a message that is safe to show to end
// users; internal details such as upstream status codes and transport errors
// are logged but never surfaced.
func (r *Resolver) Resolve(ctx context.Context, input string) (*ResolvedContent, error) {
	if !IsURLInput(input) {
		return &ResolvedContent{Text: input, InputType: InputTypeText}, nil
	}

	rawURL := strings.TrimSpace(input)
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, rejection("Invalid URL format.", FailInvalidURL)
	}

	if verr := r.validator.Validate(ctx, u); verr != nil {
		var blocked *BlockedError
		class := FailBlockedHost
		if errors.As(verr, &blocked) {
			class = blocked.Class
		}
		r.logger.Info("job description url rejected",
			zap.String("url", rawURL),
			zap.String("class", class),
		)
		return nil, rejection(verr.Error()+".", class)
	}

	html, err := r.fetcher.Fetch(ctx, u)
	if err != nil {
		rerr := fetchRejection(err)
		r.logger.Info("job description fetch failed",
			zap.String("url", rawURL),
			zap.String("class", rerr.Class),
			zap.Error(err),
		)
		return nil, rerr
	}

	text := ExtractText(html)
	if utf8.RuneCountInString(text) < MinExtractedContentLength {
		r.logger.Info("job description extraction too short",
			zap.String("url", rawURL),
			zap.Int("chars", utf8.RuneCountInString(text)),
		)
		return nil, rejection("Could not extract enough content from the URL.", FailContentTooShort)
	}

	if !LooksLikeJobDescription(text) {
		r.logger.Info("fetched page does not look like a job posting",
			zap.String("url", rawURL),
			zap.String("title", PageTitle(html)),
		)
		return nil, rejection("The page does not appear to contain a job description.", FailNotJobDescription)
	}

	r.logger.Debug("job description resolved from url",
		zap.String("url", rawURL),
		zap.Int("chars", utf8.RuneCountInString(text)),
	)
	return &ResolvedContent{Text: text, InputType: InputTypeURL, ExtractedURL: rawURL}, nil
}

// rejection wraps a user-facing message into the resolver's single error
// shape, appending the paste-the-text guidance.
func rejection(message, class string) *ResolverError {
	return &ResolverError{
		Message:    message + guidanceSuffix,
		StatusCode: http.StatusBadRequest,
		Class:      class,
	}
}

// fetchRejection maps fetch-layer errors to user-safe messages. Redirect
// policy rejections, redirect overflow, and oversized responses get specific
// wording; every other failure collapses into a generic message so that
// internal details never reach the client.
func fetchRejection(err error) *ResolverError {
	var redirectBlocked *RedirectBlockedError
	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return rejection("The URL redirected too many times.", FailTooManyRedirects)
	case errors.Is(err, ErrResponseTooLarge):
		return rejection("The page at this URL is too large to process.", FailResponseTooLarge)
	case errors.As(err, &redirectBlocked):
		return rejection("The URL redirect was blocked: "+redirectBlocked.Reason+".", FailRedirectBlocked)
	default:
		return rejection("The URL could not be fetched.", FailFetch)
	}
}
