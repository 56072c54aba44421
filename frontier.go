package domsift

import "context"

// URLFrontier manages the queue of URLs pending crawl. Implementations
// dedupe URLs so each is returned at most once per crawl.
type URLFrontier interface {
	// Push adds a link to the frontier. It returns false if the URL was
	// seen before and the link was discarded.
	Push(link DiscoveredLink) bool

	// Pop removes and returns the highest-priority link. It returns
	// false when the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of links waiting in the frontier.
	Len() int
}

// RateLimiter throttles requests so each domain is fetched politely.
type RateLimiter interface {
	// Wait blocks until a request to the domain is allowed or the
	// context is cancelled.
	Wait(ctx context.Context, domain string) error
}
