package mock

import (
	"context"

	"github.com/domsift/domsift"
)

// Compile-time interface verification.
var (
	_ domsift.URLFrontier = (*URLFrontier)(nil)
	_ domsift.RateLimiter = (*RateLimiter)(nil)
)

// URLFrontier is a mock implementation of domsift.URLFrontier.
type URLFrontier struct {
	PushFn func(link domsift.DiscoveredLink) bool
	PopFn  func() (domsift.DiscoveredLink, bool)
	LenFn  func() int
}

func (f *URLFrontier) Push(link domsift.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (domsift.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

// RateLimiter is a mock implementation of domsift.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *RateLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
