// Package bloom provides visited-URL tracking for crawl sessions using
// Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Visited tracks URLs a crawl session has already fetched or queued.
// False positives are possible (a never-seen URL may be skipped), false
// negatives are not, so a URL is never fetched twice.
type Visited struct {
	f *bloom.BloomFilter
}

// NewVisited creates a visited set sized for n expected URLs with the given
// false positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as visited.
func (v *Visited) Add(url string) {
	v.f.AddString(url)
}

// Has reports whether the URL has been visited.
func (v *Visited) Has(url string) bool {
	return v.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs in the set.
func (v *Visited) EstimatedCount() uint {
	return uint(v.f.ApproximatedSize())
}
