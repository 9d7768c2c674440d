// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit provides a process-wide minimum-interval throttle shared
// by all goroutines that talk to the archive. NCBI allows 3 requests/second
// without an API key and 10/second with one; a single Limiter instance is
// constructed per session and passed to every worker by composition.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a minimum interval between granted calls across
// goroutines. The zero value performs no limiting.
type Limiter struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// New returns a Limiter with the given minimum interval between grants.
// A zero or negative interval disables blocking entirely.
func New(interval time.Duration) *Limiter {
	if interval < 0 {
		interval = 0
	}
	return &Limiter{interval: interval}
}

// Wait blocks until at least the configured interval has elapsed since the
// previously granted call, across all goroutines sharing the Limiter. The
// timestamp comparison uses Go's monotonic clock, so wall-clock adjustments
// cannot shorten or lengthen the gap. Holding the mutex through the sleep is
// what serializes concurrent callers: no two Wait calls can return within
// less than the interval of each other.
func (l *Limiter) Wait() {
	if l.interval <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if d := l.interval - time.Since(l.last); d > 0 {
			time.Sleep(d)
		}
	}
	l.last = time.Now()
}

// Interval returns the configured minimum interval.
func (l *Limiter) Interval() time.Duration { return l.interval }
