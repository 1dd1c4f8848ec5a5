// Package extract orchestrates the extraction pipeline: URL normalization,
// crawling, content normalization, and module inference, with an optional
// result cache in front.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/mkowal/docmap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Defaults applied by Run when the corresponding Runner field is zero.
const (
	DefaultMaxDepth     = 2
	DefaultMaxPages     = 50
	DefaultCharsPerPage = 1000
	DefaultMaxModules   = 10
)

// Runner wires the pipeline stages together. Crawler, Normalizer, and at
// least one Inferencer are required; Files, Cache, and Logger are optional.
type Runner struct {
	Crawler    docmap.Crawler
	Normalizer docmap.Normalizer
	Files      docmap.FileReader
	Cache      docmap.ResultCache
	Logger     *slog.Logger

	// Inferencers form the ordered provider chain. The last entry is
	// expected to be the heuristic fallback, which never fails on
	// non-empty input.
	Inferencers []docmap.Inferencer

	MaxDepth     int
	MaxPages     int
	CharsPerPage int
	MaxModules   int
}

// Run extracts a module outline from the given inputs. Inputs may mix URLs
// and local file paths; URLs are validated up front and local files are read
// through the configured FileReader. Cache reads and writes are best-effort
// and never fail a run.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]docmap.Module, error) {
	maxDepth := orDefault(r.MaxDepth, DefaultMaxDepth)
	maxPages := orDefault(r.MaxPages, DefaultMaxPages)
	charsPerPage := orDefault(r.CharsPerPage, DefaultCharsPerPage)
	maxModules := orDefault(r.MaxModules, DefaultMaxModules)
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	paths, rawURLs := splitInputs(inputs)

	var urls []string
	if len(rawURLs) > 0 {
		var err error
		urls, err = docmap.NormalizeURLs(rawURLs)
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 && len(urls) == 0 {
		return nil, docmap.Errorf(docmap.EINVALID, "no inputs provided")
	}

	key := cacheKey(paths, urls, maxDepth, maxPages, maxModules)
	if r.Cache != nil {
		modules, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "err", err)
		} else if ok {
			logger.Info("cache hit", "key", key, "modules", len(modules))
			return modules, nil
		}
	}

	texts, err := r.gather(ctx, paths, urls, maxDepth, maxPages, charsPerPage, logger)
	if err != nil {
		return nil, err
	}

	combined := strings.TrimSpace(strings.Join(texts, "\n\n"))
	if combined == "" {
		return nil, docmap.Errorf(docmap.EUNPROCESSABLE, "no usable content found at the given inputs")
	}

	modules, err := r.infer(ctx, combined, maxModules, logger)
	if err != nil {
		return nil, err
	}
	docmap.BackfillConfidence(modules)

	if r.Cache != nil {
		if err := r.Cache.Put(ctx, key, modules); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}
	return modules, nil
}

// gather collects normalized text for every input. Local files are read
// directly; each URL seed is crawled concurrently with its own visited set
// and budgets. Results keep input order regardless of completion order.
func (r *Runner) gather(ctx context.Context, paths, urls []string, maxDepth, maxPages, charsPerPage int, logger *slog.Logger) ([]string, error) {
	texts := make([]string, len(paths)+len(urls))

	for i, path := range paths {
		if r.Files == nil {
			return nil, docmap.Errorf(docmap.EINVALID, "local file input %q requires a file reader", path)
		}
		content, err := r.Files.Read(path)
		if err != nil {
			logger.Warn("file read failed", "path", path, "err", err)
			continue
		}
		texts[i] = clip(content, charsPerPage)
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, seed := range urls {
		idx, seed := len(paths)+i, seed
		g.Go(func() error {
			pages := r.Crawler.Crawl(gctx, seed, maxDepth, maxPages)
			logger.Info("crawl complete", "seed", seed, "pages", len(pages))

			parts := make([]string, 0, len(pages))
			for _, page := range pages {
				text, err := r.normalize(page.Document)
				if err != nil {
					logger.Warn("normalize failed", "url", page.URL, "err", err)
					continue
				}
				if text = clip(text, charsPerPage); text != "" {
					parts = append(parts, text)
				}
			}

			mu.Lock()
			texts[idx] = strings.Join(parts, "\n\n")
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := texts[:0]
	for _, t := range texts {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

func (r *Runner) normalize(doc *html.Node) (string, error) {
	if doc == nil {
		return "", docmap.Errorf(docmap.EINVALID, "page has no document")
	}
	return r.Normalizer.Normalize(doc)
}

// infer runs the provider chain in order, returning the first success.
func (r *Runner) infer(ctx context.Context, text string, maxModules int, logger *slog.Logger) ([]docmap.Module, error) {
	if len(r.Inferencers) == 0 {
		return nil, docmap.Errorf(docmap.EINTERNAL, "no inferencers configured")
	}

	var lastErr error
	for _, inf := range r.Inferencers {
		modules, err := inf.Infer(ctx, text, maxModules)
		if err != nil {
			logger.Warn("inference failed, falling back", "provider", inf.Name(), "err", err)
			lastErr = err
			continue
		}
		return modules, nil
	}
	return nil, lastErr
}

// splitInputs separates local file inputs from URL inputs, preserving order
// within each group. An input is local when it uses the file scheme or looks
// like a filesystem path.
func splitInputs(inputs []string) (paths, urls []string) {
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if p, ok := strings.CutPrefix(in, "file://"); ok {
			paths = append(paths, p)
			continue
		}
		if strings.HasPrefix(in, "/") || strings.HasPrefix(in, "./") || strings.HasPrefix(in, "../") {
			paths = append(paths, in)
			continue
		}
		urls = append(urls, in)
	}
	return paths, urls
}

// cacheKey derives a stable key from the normalized inputs and the crawl
// parameters that shape the result.
func cacheKey(paths, urls []string, maxDepth, maxPages, maxModules int) string {
	h := xxhash.New()
	for _, p := range paths {
		h.WriteString("path:" + p + "\n")
	}
	for _, u := range urls {
		h.WriteString("url:" + u + "\n")
	}
	fmt.Fprintf(h, "depth:%d pages:%d modules:%d", maxDepth, maxPages, maxModules)
	return fmt.Sprintf("%016x", h.Sum64())
}

// clip returns the first n characters of s without splitting a rune.
func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
