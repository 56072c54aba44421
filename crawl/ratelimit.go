package crawl

import (
	"context"
	"sync"

	"github.com/domsift/domsift"
	"golang.org/x/time/rate"
)

// Ensure type implements interface.
var _ domsift.RateLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a per-domain request rate so that concurrent
// workers fetching from the same host do not hammer it.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter returns a limiter that allows rps requests per second
// to each distinct domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	l.mu.Lock()
	lim, ok := l.limiters[domain]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[domain] = lim
	}
	l.mu.Unlock()
	return lim.Wait(ctx)
}
