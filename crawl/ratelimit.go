package crawl

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/termsift/termsift"
)

// Compile-time interface verification.
var _ termsift.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate-limits requests per domain. Each domain gets its own
// token bucket with a burst of one, created on first use.
// It is safe for concurrent use by multiple goroutines.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a limiter allowing rps requests per second
// per domain. rps <= 0 disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the domain's rate limit allows a request.
// Returns an error if the context is canceled while waiting.
func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.rps <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	limiter, ok := l.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[domain] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
