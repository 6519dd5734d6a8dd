package tracking

import (
	"sync"
	"time"
)

// Countdown shows the remaining time of an arrival estimate. It follows wall-clock
// time from the moment it was started and ignores position updates until Reset.
type Countdown struct {
	mu        sync.Mutex
	total     time.Duration
	startedAt time.Time
	running   bool
	now       func() time.Time
}

// NewCountdown returns a stopped countdown. now defaults to time.Now.
func NewCountdown(now func() time.Time) *Countdown {
	if now == nil {
		now = time.Now
	}
	return &Countdown{now: now}
}

// Reset restarts the countdown from estimate at the current instant.
func (c *Countdown) Reset(estimate time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if estimate < 0 {
		estimate = 0
	}
	c.total = estimate
	c.startedAt = c.now()
	c.running = true
}

// Running reports whether the countdown was started.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Remaining returns the time left, never below zero.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return 0
	}
	left := c.total - c.now().Sub(c.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// RemainingSeconds returns Remaining in whole seconds, rounded up.
func (c *Countdown) RemainingSeconds() int {
	left := c.Remaining()
	secs := int(left / time.Second)
	if left%time.Second > 0 {
		secs++
	}
	return secs
}
