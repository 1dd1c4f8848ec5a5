// Package http provides an HTTP-based implementation of docmap.Fetcher.
// It presents a browser-like request identity and classifies failures with
// docmap error codes so the crawler can decide what to retry.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkowal/docmap"
)

// DefaultFetchTimeout is the default hard timeout for a single request,
// including redirects.
const DefaultFetchTimeout = 15 * time.Second

// minBodySize is the floor below which a response body is rejected as a
// stub page rather than real documentation.
const minBodySize = 100

// documentTypes are the Content-Type substrings accepted as page markup.
var documentTypes = []string{
	"text/html",
	"application/xhtml",
	"text/xml",
	"application/xml",
}

// defaultUserAgent mimics a desktop Chrome browser. Documentation hosts
// routinely serve reduced or empty pages to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Ensure Fetcher implements docmap.Fetcher at compile time.
var _ docmap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser identity sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// Redirects are followed by the default client policy.
	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at url.
//
// Failures are classified by error code: ENOTFOUND for 404, EUNAVAILABLE
// for transient statuses (429, 500, 502, 503, 504) and network errors, and
// EUNPROCESSABLE for responses that are not usable documents (wrong
// Content-Type, near-empty body).
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docmap.Errorf(docmap.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", docmap.Errorf(docmap.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", docmap.Errorf(docmap.ENOTFOUND, "not found: %s", url)
	case isTransientStatus(resp.StatusCode):
		return "", docmap.Errorf(docmap.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", docmap.Errorf(docmap.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !isDocumentType(contentType) {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "non-document content type %q for %s", contentType, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", docmap.Errorf(docmap.EUNAVAILABLE, "read body of %s: %v", url, err)
	}
	if len(body) < minBodySize {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "page too small (%d bytes): %s", len(body), url)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isTransientStatus reports whether the status code is worth retrying.
func isTransientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	}
	return false
}

// isDocumentType reports whether the Content-Type header describes page
// markup the pipeline can parse.
func isDocumentType(contentType string) bool {
	for _, t := range documentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
