package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mkowal/docmap"
	"github.com/mkowal/docmap/crawl"
	"github.com/mkowal/docmap/extract"
	"github.com/mkowal/docmap/fs"
	"github.com/mkowal/docmap/gemini"
	"github.com/mkowal/docmap/goquery"
	"github.com/mkowal/docmap/htmltomarkdown"
	dochttp "github.com/mkowal/docmap/http"
	"github.com/mkowal/docmap/infer"
	docslog "github.com/mkowal/docmap/slog"
	"github.com/mkowal/docmap/sqlite"
	"google.golang.org/genai"
)

// domainRequestsPerSecond is the per-domain crawl rate limit.
const domainRequestsPerSecond = 1.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Result cache path. Set before calling Run().
	CachePath string

	// SQLite database backing the result cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmap"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "extract" {
		runner, err := m.buildRunner(ctx, &cli.Extract, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

// buildRunner wires the extraction pipeline from the command's flags.
func (m *Main) buildRunner(ctx context.Context, cmd *ExtractCmd, stderr io.Writer) (*extract.Runner, error) {
	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), logger)
	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		RateLimiter: crawl.NewDomainLimiter(domainRequestsPerSecond),
		Logger:      logger,
	}

	var normalizer docmap.Normalizer
	switch cmd.Format {
	case "markdown":
		normalizer = htmltomarkdown.NewNormalizer()
	default:
		normalizer = goquery.NewNormalizer()
	}

	var cache docmap.ResultCache
	if !cmd.NoCache {
		path := cmd.CachePath
		if path == "" {
			path = m.CachePath
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCMAP_CACHE to use a different cache path, or pass --no-cache\n")
			return nil, fmt.Errorf("failed to open cache at %q: %w", path, err)
		}
		m.DB = db
		cache = sqlite.NewCache(db, 0)
	}

	var inferencers []docmap.Inferencer
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		inferencers = append(inferencers, docslog.NewLoggingInferencer(gemini.NewInferencer(client, ""), logger))
	}
	inferencers = append(inferencers, docslog.NewLoggingInferencer(infer.NewHeuristic(), logger))

	return &extract.Runner{
		Crawler:      crawler,
		Normalizer:   normalizer,
		Files:        fs.NewReader(),
		Cache:        cache,
		Logger:       logger,
		Inferencers:  inferencers,
		MaxDepth:     cmd.Depth,
		MaxPages:     cmd.Pages,
		CharsPerPage: cmd.Chars,
		MaxModules:   cmd.MaxModules,
	}, nil
}

func defaultCachePath() string {
	if path := os.Getenv("DOCMAP_CACHE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docmap.db"
	}
	dir := filepath.Join(home, ".docmap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docmap.db")
}
