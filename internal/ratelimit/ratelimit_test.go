// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ratelimit

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWait_EnforcesInterval(t *testing.T) {
	const interval = 20 * time.Millisecond
	l := New(interval)

	var times []time.Time
	for i := 0; i < 4; i++ {
		l.Wait()
		times = append(times, time.Now())
	}

	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])
		// Allow a small epsilon for timer granularity.
		assert.GreaterOrEqual(t, gap, interval-2*time.Millisecond,
			"gap %d was %v, want >= %v", i, gap, interval)
	}
}

func TestWait_ConcurrentCallersSerialized(t *testing.T) {
	const (
		interval = 15 * time.Millisecond
		callers  = 6
	)
	l := New(interval)

	var (
		mu    sync.Mutex
		times []time.Time
		wg    sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Wait()
			now := time.Now()
			mu.Lock()
			times = append(times, now)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])
		assert.GreaterOrEqual(t, gap, interval-2*time.Millisecond,
			"concurrent gap %d was %v, want >= %v", i, gap, interval)
	}
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	l := New(0)
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestNew_NegativeIntervalDisabled(t *testing.T) {
	l := New(-1 * time.Second)
	assert.Equal(t, time.Duration(0), l.Interval())

	start := time.Now()
	l.Wait()
	l.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
