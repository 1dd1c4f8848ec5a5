// Package mock provides hand-written test doubles for docmap interfaces.
// Each mock exposes function fields so tests configure exactly the behavior
// they need.
package mock

import (
	"context"

	"github.com/mkowal/docmap"
)

var _ docmap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docmap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docmap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmap.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
