package mock

import (
	"context"

	"github.com/mkowal/docmap"
)

var _ docmap.FileReader = (*FileReader)(nil)

// FileReader is a mock implementation of docmap.FileReader.
type FileReader struct {
	ReadFn func(path string) (string, error)
}

func (r *FileReader) Read(path string) (string, error) {
	return r.ReadFn(path)
}

var _ docmap.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of docmap.ResultCache.
type ResultCache struct {
	GetFn func(ctx context.Context, key string) ([]docmap.Module, bool, error)
	PutFn func(ctx context.Context, key string, modules []docmap.Module) error
}

func (c *ResultCache) Get(ctx context.Context, key string) ([]docmap.Module, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *ResultCache) Put(ctx context.Context, key string, modules []docmap.Module) error {
	return c.PutFn(ctx, key, modules)
}
