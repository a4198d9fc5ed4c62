package jobdesc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Fetcher downloads a URL with bounded time, size, and redirect count.
// Automatic redirect following is disabled so that every redirect target
// passes SSRF validation before it is contacted.
type Fetcher struct {
	// Client is the transport used for requests. Its redirect policy is
	// overridden; nil means a default client.
	Client *http.Client
	// Validator re-checks each redirect target. Required.
	Validator *Validator

	UserAgent string
	// MaxBytes caps both the declared Content-Length and the bytes actually
	// streamed. Zero means MaxResponseSize.
	MaxBytes int64
	// Timeout spans the whole fetch including every redirect hop. Zero means
	// FetchTimeout.
	Timeout time.Duration
	// MaxRedirects is the hop ceiling. Zero means MaxRedirects.
	MaxRedirects int
}

func (f *Fetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return MaxResponseSize
}

func (f *Fetcher) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return FetchTimeout
}

func (f *Fetcher) maxRedirects() int {
	if f.MaxRedirects > 0 {
		return f.MaxRedirects
	}
	return MaxRedirects
}

// httpClient returns a copy of the configured client with automatic redirect
// following disabled.
func (f *Fetcher) httpClient() *http.Client {
	client := &http.Client{}
	if f.Client != nil {
		clone := *f.Client
		client = &clone
	}
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

// Fetch retrieves u and returns the response body decoded as UTF-8. The
// caller is expected to have validated u already; Fetch itself validates
// every redirect target it follows.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (string, error) {
	if f.Validator == nil {
		return "", &FetchError{URL: u.String(), Message: "no validator configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()

	client := f.httpClient()
	current := u
	for redirects := 0; ; redirects++ {
		if redirects >= f.maxRedirects() {
			return "", ErrTooManyRedirects
		}

		resp, err := f.get(ctx, client, current)
		if err != nil {
			return "", err
		}

		if resp.StatusCode >= 300 && resp.StatusCode <= 399 {
			target, err := redirectTarget(current, resp)
			resp.Body.Close()
			if err != nil {
				return "", err
			}
			if verr := f.Validator.Validate(ctx, target); verr != nil {
				return "", &RedirectBlockedError{Target: target.String(), Reason: verr.Error()}
			}
			current = target
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return "", &FetchError{
				URL:     current.String(),
				Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			}
		}

		if resp.ContentLength > f.maxBytes() {
			resp.Body.Close()
			return "", ErrResponseTooLarge
		}

		return f.readBody(resp)
	}
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Message: "building request", Cause: err}
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Message: "request failed", Cause: err}
	}
	return resp, nil
}

// redirectTarget resolves the Location header of a 3xx response against the
// URL that produced it. A 3xx response without a Location header is treated
// as a plain fetch failure.
func redirectTarget(current *url.URL, resp *http.Response) (*url.URL, error) {
	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, &FetchError{
			URL:     current.String(),
			Message: fmt.Sprintf("redirect status %d without Location header", resp.StatusCode),
		}
	}
	target, err := current.Parse(loc)
	if err != nil {
		return nil, &RedirectBlockedError{Target: loc, Reason: "Invalid redirect URL"}
	}
	return target, nil
}

// readBody streams the response body through a byte counter and a UTF-8
// decoder. The counter aborts mid-stream once the raw byte total passes the
// cap, regardless of what Content-Length claimed; the decoder replaces
// invalid sequences and handles multi-byte runes split across reads.
func (f *Fetcher) readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	capped := &cappedReader{r: resp.Body, max: f.maxBytes()}
	decoded := transform.NewReader(capped, unicode.UTF8BOM.NewDecoder())

	data, err := io.ReadAll(decoded)
	if err != nil {
		if errors.Is(err, ErrResponseTooLarge) {
			return "", ErrResponseTooLarge
		}
		return "", &FetchError{URL: resp.Request.URL.String(), Message: "reading body", Cause: err}
	}
	return string(data), nil
}

// cappedReader counts raw bytes as they stream and fails once the running
// total exceeds max.
type cappedReader struct {
	r     io.Reader
	max   int64
	total int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.total += int64(n)
	if c.total > c.max {
		return n, ErrResponseTooLarge
	}
	return n, err
}
