package bot

import (
	"sync"
	"time"
)

// RateLimiter caps how often a single user may request rate-limited
// spreads within a rolling window. Entries older than the window are
// pruned on every check, so the ledger never undercounts requests that
// are still inside it.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[int64][]time.Time

	now func() time.Time
}

// NewRateLimiter allows up to limit requests per user per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		requests: make(map[int64][]time.Time),
		now:      time.Now,
	}
}

// Allow records the request and reports whether it is within the limit.
// A denied request is not recorded.
func (l *RateLimiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.requests[userID][:0]
	for _, ts := range l.requests[userID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		l.requests[userID] = recent
		return false
	}

	l.requests[userID] = append(recent, now)
	return true
}
