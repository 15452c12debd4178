// Package bravethrottle implements a token-bucket rate limiter for
// outbound Brave API calls, with a cancellable acquire that polls a
// caller-supplied predicate instead of depending on any one cancellation
// primitive.
package bravethrottle

import (
	"errors"
	"sync"
	"time"
)

// ErrCancelled is returned by AcquireCancellable when isCancelled reports
// true before a token becomes available.
var ErrCancelled = errors.New("throttle: acquire cancelled")

type bucketState struct {
	availableTokens float64
	lastRefill      time.Time
}

// Throttle is a token bucket: tokensPerSecond tokens refill continuously up
// to burstCapacity, and each request consumes one token.
type Throttle struct {
	tokensPerSecond float64
	burstCapacity   float64

	mu    sync.Mutex
	state bucketState
}

// New creates a Throttle. Both parameters are floored at 1.
func New(tokensPerSecond, burstCapacity uint32) *Throttle {
	if tokensPerSecond < 1 {
		tokensPerSecond = 1
	}
	if burstCapacity < 1 {
		burstCapacity = 1
	}
	return &Throttle{
		tokensPerSecond: float64(tokensPerSecond),
		burstCapacity:   float64(burstCapacity),
		state: bucketState{
			availableTokens: float64(burstCapacity),
			lastRefill:      time.Now(),
		},
	}
}

// Acquire blocks until a token is available.
func (t *Throttle) Acquire() {
	_ = t.AcquireCancellable(func() bool { return false })
}

// AcquireCancellable blocks until a token is available or isCancelled
// reports true, polling every 20ms while it waits.
func (t *Throttle) AcquireCancellable(isCancelled func() bool) error {
	const pollStep = 20 * time.Millisecond

	for {
		if isCancelled() {
			return ErrCancelled
		}

		t.mu.Lock()
		if isCancelled() {
			t.mu.Unlock()
			return ErrCancelled
		}

		now := time.Now()
		elapsed := now.Sub(t.state.lastRefill).Seconds()
		if elapsed > 0 {
			t.state.availableTokens = min(t.state.availableTokens+elapsed*t.tokensPerSecond, t.burstCapacity)
			t.state.lastRefill = now
		}

		if t.state.availableTokens >= 1.0 {
			t.state.availableTokens -= 1.0
			t.mu.Unlock()
			return nil
		}

		deficit := 1.0 - t.state.availableTokens
		waitSeconds := deficit / t.tokensPerSecond
		t.mu.Unlock()

		totalWait := time.Duration(max(waitSeconds, 0.001) * float64(time.Second))
		start := time.Now()
		for time.Since(start) < totalWait {
			if isCancelled() {
				return ErrCancelled
			}
			remaining := totalWait - time.Since(start)
			step := pollStep
			if remaining < step {
				step = remaining
			}
			time.Sleep(step)
		}
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
