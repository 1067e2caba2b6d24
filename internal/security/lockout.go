package security

import (
	"sync"
	"time"
)

const (
	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute
)

// LockoutTracker locks an identifier (login email) after repeated failed
// attempts inside a sliding window. State is in-memory and per process.
type LockoutTracker struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewLockoutTracker() *LockoutTracker {
	return &LockoutTracker{
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// IsLocked reports whether the identifier has hit the failure threshold,
// along with the count of recent failures.
func (t *LockoutTracker) IsLocked(identifier string) (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.prune(identifier)
	return len(recent) >= lockoutThreshold, len(recent)
}

// RecordFailure notes a failed attempt for the identifier
func (t *LockoutTracker) RecordFailure(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempts[identifier] = append(t.prune(identifier), t.now())
}

// Clear removes all failures after a successful login
func (t *LockoutTracker) Clear(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, identifier)
}

// prune drops attempts older than the window. Caller holds the lock.
func (t *LockoutTracker) prune(identifier string) []time.Time {
	cutoff := t.now().Add(-lockoutWindow)
	var recent []time.Time
	for _, at := range t.attempts[identifier] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	if recent == nil {
		delete(t.attempts, identifier)
	} else {
		t.attempts[identifier] = recent
	}
	return recent
}
