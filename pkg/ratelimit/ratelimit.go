// Package ratelimit implements a process-local sliding-window admission
// controller for the write path. State lives in memory only: restarting the
// process resets every window, and multi-process deployments would need this
// state externalized to a shared store.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultMax is the default number of admissions per window.
	DefaultMax = 6
	// DefaultWindow is the default trailing window length.
	DefaultWindow = 60 * time.Second

	// sentinelKey buckets requests whose client address could not be
	// determined, so unknown callers share one window instead of bypassing
	// the limiter.
	sentinelKey = "unknown"
)

// Limiter admits at most max requests per key within any trailing window.
// It is safe for concurrent use.
type Limiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	windows map[string][]time.Time

	now func() time.Time // overridable in tests
}

// New creates a Limiter. Non-positive arguments fall back to the defaults.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMax
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		max:     max,
		window:  window,
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Admit reports whether a request for key may proceed. Expired timestamps are
// evicted lazily on each call; denied requests are not recorded, so a caller
// probing at the limit is never locked out longer than one window.
//
// The evict-then-append sequence runs under a single critical section. Two
// concurrent calls for the same key can therefore never both observe a stale
// count and exceed the max together.
func (l *Limiter) Admit(key string) bool {
	if key == "" {
		key = sentinelKey
	}
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.windows[key][:0]
	for _, ts := range l.windows[key] {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.windows[key] = kept
		return false
	}
	l.windows[key] = append(kept, now)
	return true
}

// Max returns the admission limit per window.
func (l *Limiter) Max() int {
	return l.max
}

// Window returns the trailing window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// PurgeIdle drops keys whose windows hold no live timestamps. Correctness
// never depends on this running; it only bounds memory in long-lived
// processes. Callers typically run it on a slow ticker.
func (l *Limiter) PurgeIdle() {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, ts := range l.windows {
		live := false
		for _, t := range ts {
			if !t.Before(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.windows, key)
		}
	}
}

// TrackedKeys returns the number of keys currently held, live or idle.
func (l *Limiter) TrackedKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
