package main

import (
	"context"
	"io"

	"github.com/mkowal/docmap"
)

// Extractor runs the documentation extraction pipeline.
type Extractor interface {
	Run(ctx context.Context, inputs []string) ([]docmap.Module, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Runner Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract a module outline from documentation URLs or files"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Inputs []string `arg:"" name:"urls" help:"Documentation URLs or local file paths"`

	Depth      int    `default:"2" help:"Maximum crawl depth per seed"`
	Pages      int    `default:"50" help:"Maximum pages per seed"`
	Chars      int    `default:"1000" help:"Characters kept per page"`
	MaxModules int    `name:"max-modules" default:"10" help:"Maximum modules in the outline"`
	Output     string `short:"o" help:"Write the outline as JSON to this path"`
	Format     string `default:"text" enum:"text,markdown" help:"Page normalization format"`
	NoCache    bool   `help:"Bypass the result cache"`
	CachePath  string `name:"cache-path" help:"Result cache database path"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`
}
