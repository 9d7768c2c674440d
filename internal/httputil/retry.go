// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"time"
)

// FailureClass categorizes why an attempt against the archive failed.
type FailureClass int

const (
	// ClassTransient covers transport errors and non-2xx statuses,
	// including 429 and 5xx. Retried with backoff.
	ClassTransient FailureClass = iota

	// ClassMalformed covers response bodies that fail to parse. Retried
	// like transient failures.
	ClassMalformed

	// ClassUnavailable is the archive's definitive statement that the
	// identifier has no retrievable full text. Never retried.
	ClassUnavailable

	// ClassLocalIO covers failures writing the persisted record. Never
	// retried: repeating the network call cannot fix a local write.
	ClassLocalIO
)

func (c FailureClass) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassMalformed:
		return "malformed"
	case ClassUnavailable:
		return "unavailable"
	case ClassLocalIO:
		return "local-io"
	default:
		return "unknown"
	}
}

// Backoff computes the sleep before the next attempt, given the 0-based
// number of the attempt that just failed.
type Backoff func(attempt int) time.Duration

// LinearBackoff grows the delay by base per failed attempt: base, 2*base,
// 3*base. Used by the search path.
func LinearBackoff(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * base
	}
}

// FixedBackoff sleeps the same delay between every attempt. Used by the
// fetch path.
func FixedBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

// Policy is a per-operation retry decision table: how many attempts are
// allowed and how long to back off between them. Classes decide
// retryability; the policy decides pacing and exhaustion.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff
}

// Retryable reports whether the class permits another attempt at all.
func Retryable(c FailureClass) bool {
	return c == ClassTransient || c == ClassMalformed
}

// ShouldRetry reports whether another attempt should be made after a
// failure of the given class on the given 0-based attempt.
func (p Policy) ShouldRetry(c FailureClass, attempt int) bool {
	return Retryable(c) && attempt < p.MaxAttempts-1
}

// Sleep waits the backoff for the given attempt, returning early if the
// context is cancelled.
func (p Policy) Sleep(ctx context.Context, attempt int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.Backoff(attempt)):
		return nil
	}
}
