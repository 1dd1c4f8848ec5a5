package docmap

import (
	"context"

	"golang.org/x/net/html"
)

// Page represents a fetched documentation page. The document tree is owned
// by the caller of the crawl and is not mutated after creation.
type Page struct {
	URL      string
	Document *html.Node
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the document at url, following redirects.
	// The context controls timeout and cancellation. Implementations
	// classify failures with error codes: ENOTFOUND for missing pages,
	// EUNAVAILABLE for transient HTTP failures worth retrying, and
	// EUNPROCESSABLE for responses that are not usable documents.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Link is an outbound link discovered on a page, in document order.
type Link struct {
	URL  string // absolute, fragment stripped
	Text string
}

// LinkExtractor extracts outbound links from a parsed document.
type LinkExtractor interface {
	// ExtractLinks resolves every anchor in doc against baseURL and
	// returns the results in document order with fragments stripped.
	ExtractLinks(doc *html.Node, baseURL string) ([]Link, error)
}

// Normalizer converts one parsed document into clean, structure-preserving
// plain text.
type Normalizer interface {
	// Normalize strips non-content chrome and flattens the document to
	// text, preserving list and table structure as textual markers.
	// Output is deterministic for a given input document.
	Normalize(doc *html.Node) (string, error)
}

// Crawler walks a documentation site depth first from a seed URL.
type Crawler interface {
	// Crawl returns the pages reached from seed within the depth and
	// page budgets. Fetch failures are isolated per branch, so the
	// result may be partial; a failed seed yields an empty slice.
	Crawl(ctx context.Context, seed string, maxDepth, maxPages int) []*Page
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
