package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowal/docmap"
	"golang.org/x/net/html"
)

// Ensure LinkExtractor implements docmap.LinkExtractor at compile time.
var _ docmap.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts outbound links from parsed documents in document
// order. Scope filtering (same host, document extensions) is the crawler's
// concern; the extractor only resolves and deduplicates.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks resolves every anchor in doc against baseURL.
// Fragments are stripped, duplicates keep their first occurrence, and
// self-referential and non-HTTP (javascript:, mailto:) links are dropped.
func (e *LinkExtractor) ExtractLinks(doc *html.Node, baseURL string) ([]docmap.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docmap.Errorf(docmap.EINVALID, "invalid base URL: %v", err)
	}

	sel := goquery.NewDocumentFromNode(doc)

	seen := make(map[string]struct{})
	var links []docmap.Link

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}

		links = append(links, docmap.Link{
			URL:  resolved,
			Text: strings.TrimSpace(a.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL with the fragment
// stripped. Returns "" for unparseable or self-referential hrefs.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
