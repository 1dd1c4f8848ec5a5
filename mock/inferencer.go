package mock

import (
	"context"

	"github.com/mkowal/docmap"
)

var _ docmap.Inferencer = (*Inferencer)(nil)

// Inferencer is a mock implementation of docmap.Inferencer.
type Inferencer struct {
	InferFn func(ctx context.Context, text string, maxModules int) ([]docmap.Module, error)
	NameFn  func() string
}

func (i *Inferencer) Infer(ctx context.Context, text string, maxModules int) ([]docmap.Module, error) {
	return i.InferFn(ctx, text, maxModules)
}

func (i *Inferencer) Name() string {
	if i.NameFn == nil {
		return "mock"
	}
	return i.NameFn()
}
