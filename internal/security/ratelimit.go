package security

import (
	"sync"
	"time"
)

// RateLimiter caps how often an IP may perform an action inside a sliding
// window. Attempts are recorded explicitly so that, for registration, only
// successful attempts count against the cap.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// NewRegistrationLimiter allows three registrations per IP per hour
func NewRegistrationLimiter() *RateLimiter {
	return NewRateLimiter(3, time.Hour)
}

// NewLoginLimiter allows five login attempts per IP per fifteen minutes
func NewLoginLimiter() *RateLimiter {
	return NewRateLimiter(5, 15*time.Minute)
}

// Allow reports whether the key is under its limit
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.prune(key)) < l.limit
}

// Record counts an attempt against the key
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts[key] = append(l.prune(key), l.now())
}

// prune drops attempts older than the window. Caller holds the lock.
func (l *RateLimiter) prune(key string) []time.Time {
	cutoff := l.now().Add(-l.window)
	var recent []time.Time
	for _, at := range l.attempts[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	if recent == nil {
		delete(l.attempts, key)
	} else {
		l.attempts[key] = recent
	}
	return recent
}
