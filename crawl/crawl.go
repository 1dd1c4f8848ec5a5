// Package crawl provides a depth- and page-bounded documentation crawler.
// It performs a depth-first traversal in link-appearance order, isolating
// failures per branch: the crawl always returns whatever pages were
// successfully collected.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mkowal/docmap"
	"github.com/mkowal/docmap/bloom"
	"golang.org/x/net/html"
)

// Visited-set sizing for one crawl session.
const (
	expectedURLs      = 10000
	falsePositiveRate = 0.01
)

// skipExtensions are URL suffixes that never point at documentation markup.
var skipExtensions = []string{
	".pdf", ".zip", ".tar", ".gz", ".exe", ".msi",
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg",
	".mp4", ".webm", ".mp3", ".wav", ".flac",
	".json", ".xml", ".csv",
}

// skipPatterns are path substrings marking non-content pages.
var skipPatterns = []string{
	"logout", "login", "register", "account", "cart", "checkout", "download",
}

// Ensure Crawler implements docmap.Crawler at compile time.
var _ docmap.Crawler = (*Crawler)(nil)

// Crawler fetches documentation pages starting from a seed URL.
type Crawler struct {
	Fetcher     docmap.Fetcher
	Links       docmap.LinkExtractor
	RateLimiter docmap.DomainLimiter
	Logger      *slog.Logger

	// RetryDelays overrides the backoff schedule for transient failures.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration
}

// session owns the mutable state of one crawl invocation. It is passed
// explicitly through the recursion so no state leaks between crawls, and
// independent seeds can run concurrently.
type session struct {
	host     string
	visited  *bloom.Visited
	pages    []*docmap.Page
	maxDepth int
	maxPages int
}

// Crawl performs a bounded depth-first crawl starting at seed.
//
// Pages are collected in discovery order. Every failure is handled per
// branch: siblings and the rest of the crawl continue, and the collected
// pages are returned even when the seed itself fails or the context is
// canceled mid-crawl.
func (c *Crawler) Crawl(ctx context.Context, seed string, maxDepth, maxPages int) []*docmap.Page {
	if maxPages < 1 {
		return nil
	}

	u, err := url.Parse(seed)
	if err != nil || u.Host == "" {
		c.log().Warn("invalid seed URL", "url", seed, "error", err)
		return nil
	}

	s := &session{
		host:     u.Host,
		visited:  bloom.NewVisited(expectedURLs, falsePositiveRate),
		maxDepth: maxDepth,
		maxPages: maxPages,
	}

	c.visit(ctx, s, stripFragment(seed), 0)
	return s.pages
}

// visit fetches one URL and recurses into its outbound links.
func (c *Crawler) visit(ctx context.Context, s *session, rawURL string, depth int) {
	if depth > s.maxDepth || len(s.pages) >= s.maxPages || s.visited.Has(rawURL) {
		return
	}
	if ctx.Err() != nil {
		return
	}
	s.visited.Add(rawURL)

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, s.host); err != nil {
			return // context canceled
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	rawHTML, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, delays)
	if err != nil {
		switch docmap.ErrorCode(err) {
		case docmap.ENOTFOUND:
			c.log().Warn("not found", "url", rawURL)
		case docmap.EUNPROCESSABLE:
			c.log().Info("skipped", "url", rawURL, "reason", docmap.ErrorMessage(err))
		default:
			c.log().Error("fetch failed", "url", rawURL, "error", err)
		}
		return
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		c.log().Error("parse failed", "url", rawURL, "error", err)
		return
	}

	s.pages = append(s.pages, &docmap.Page{URL: rawURL, Document: doc})
	c.log().Info("crawled", "url", rawURL, "pages", len(s.pages))

	links, err := c.Links.ExtractLinks(doc, rawURL)
	if err != nil {
		return
	}
	for _, link := range links {
		if len(s.pages) >= s.maxPages {
			break
		}
		if !isDocumentURL(link.URL, s.host) {
			continue
		}
		c.visit(ctx, s, link.URL, depth+1)
	}
}

func (c *Crawler) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// isDocumentURL reports whether the URL likely points at documentation
// content on the given host: exact host match, no binary/media extension,
// no non-content path pattern.
func isDocumentURL(rawURL, host string) bool {
	lower := strings.ToLower(rawURL)

	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	for _, pattern := range skipPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == host
}

// stripFragment removes the #fragment portion of a URL so URLs differing
// only by fragment dedupe to one visit.
func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
