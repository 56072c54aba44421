package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/bloom"
)

// Compile-time interface verification.
var _ domsift.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with a priority queue and Bloom
// filter deduplication. Links with equal priority come out in insertion
// order, so same-priority discovery stays breadth-first.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   uint64
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by
// fragment are considered duplicates.
func (f *Frontier) Push(link domsift.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.TestAndAdd(url) {
		return false
	}

	link.URL = url
	f.seq++
	heap.Push(f.queue, queuedLink{link: link, seq: f.seq})
	return true
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (domsift.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return domsift.DiscoveredLink{}, false
	}
	entry, _ := heap.Pop(f.queue).(queuedLink)
	return entry.link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued before.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

// MarkSeen records a URL as seen without queueing it, so it will never be
// pushed. Used to exclude URLs handled outside the frontier.
func (f *Frontier) MarkSeen(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen.Add(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// queuedLink pairs a link with its insertion sequence for stable ordering.
type queuedLink struct {
	link domsift.DiscoveredLink
	seq  uint64
}

// linkHeap implements heap.Interface as a max-heap on priority, breaking
// ties by insertion order.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	entry, _ := x.(queuedLink)
	*h = append(*h, entry)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
