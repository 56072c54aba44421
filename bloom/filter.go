// Package bloom provides probabilistic seen-URL tracking for crawl frontiers.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which URLs a crawl has already encountered. False positives
// are possible (a fresh URL may be reported as seen, and the crawl skips it);
// false negatives are not, so no URL is ever fetched twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL was probably seen before.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd marks the URL as seen and reports whether it was probably seen
// before the call. This is the one-step form frontiers use to decide whether
// to enqueue.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
