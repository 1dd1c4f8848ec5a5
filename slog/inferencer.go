package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowal/docmap"
)

// Ensure LoggingInferencer implements docmap.Inferencer.
var _ docmap.Inferencer = (*LoggingInferencer)(nil)

// LoggingInferencer wraps an Inferencer with logging of provider outcomes.
type LoggingInferencer struct {
	next   docmap.Inferencer
	logger *slog.Logger
}

// NewLoggingInferencer creates a new LoggingInferencer.
func NewLoggingInferencer(next docmap.Inferencer, logger *slog.Logger) *LoggingInferencer {
	return &LoggingInferencer{next: next, logger: logger}
}

// Infer logs the provider, input size, module count, and duration, then
// delegates to the wrapped inferencer.
func (i *LoggingInferencer) Infer(ctx context.Context, text string, maxModules int) (modules []docmap.Module, err error) {
	defer func(begin time.Time) {
		i.logger.Info("infer",
			"provider", i.next.Name(),
			"chars", len(text),
			"modules", len(modules),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Infer(ctx, text, maxModules)
}

// Name delegates to the wrapped inferencer.
func (i *LoggingInferencer) Name() string {
	return i.next.Name()
}
