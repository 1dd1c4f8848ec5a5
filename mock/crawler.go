package mock

import (
	"context"

	"github.com/mkowal/docmap"
)

var _ docmap.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of docmap.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, seed string, maxDepth, maxPages int) []*docmap.Page
}

func (c *Crawler) Crawl(ctx context.Context, seed string, maxDepth, maxPages int) []*docmap.Page {
	return c.CrawlFn(ctx, seed, maxDepth, maxPages)
}
