package docmap

import "context"

// Inferencer derives a module outline from normalized documentation text.
// Implementations form an ordered provider chain: hosted providers are tried
// first and the heuristic fallback must always be last, so the chain never
// fails outright on non-empty input.
type Inferencer interface {
	// Infer produces at most maxModules modules from text.
	Infer(ctx context.Context, text string, maxModules int) ([]Module, error)

	// Name identifies the provider for logging (e.g., "gemini", "heuristic").
	Name() string
}

// Heading is a structural marker detected in source text, ordered by offset.
// Level follows HTML semantics (1-6); detectors for non-heading markers
// assign synthetic levels.
type Heading struct {
	Offset int
	Level  int
	Title  string
}

// HeadingDetector scans text for one family of heading markers.
// Detectors are independent and their results are unioned and deduplicated
// centrally by infer.Harvest.
type HeadingDetector interface {
	Scan(text string) []Heading
}

// FileReader reads local documentation files as plain text.
// The pipeline treats its output identically to crawled page text.
type FileReader interface {
	Read(path string) (string, error)
}

// ResultCache stores finished outlines keyed by the normalized URL set and
// crawl parameters. Lookups are a pre-check and writes are best-effort: a
// cache failure must never fail a run.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]Module, bool, error)
	Put(ctx context.Context, key string, modules []Module) error
}
