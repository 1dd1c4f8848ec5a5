package mock

import (
	"github.com/mkowal/docmap"
	"golang.org/x/net/html"
)

var _ docmap.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of docmap.Normalizer.
type Normalizer struct {
	NormalizeFn func(doc *html.Node) (string, error)
}

func (n *Normalizer) Normalize(doc *html.Node) (string, error) {
	return n.NormalizeFn(doc)
}

var _ docmap.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docmap.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc *html.Node, baseURL string) ([]docmap.Link, error)
}

func (l *LinkExtractor) ExtractLinks(doc *html.Node, baseURL string) ([]docmap.Link, error) {
	return l.ExtractLinksFn(doc, baseURL)
}
