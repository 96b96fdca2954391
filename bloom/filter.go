// Package bloom provides probabilistic URL deduplication for crawls.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers which URLs a crawl has already touched. It may report
// a never-seen URL as seen (false positive) but never the reverse, so a
// crawl dedupe built on it can skip pages but never loop.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether a URL might have been seen.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
