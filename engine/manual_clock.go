package engine

import (
	"slices"
	"sync"
	"time"
)

// ManualClock is a Clock that only moves when told to. It makes tick-driven
// behavior deterministic in tests and headless runs.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	interval time.Duration
	next     time.Duration
	fn       func()
}

// NewManualClock returns a clock at elapsed time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Every registers fn to fire each time Advance crosses a multiple of interval
// measured from now.
func (c *ManualClock) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		panic("manual clock interval must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{
		clock:    c,
		interval: interval,
		next:     c.now + interval,
		fn:       fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in time order.
// Callbacks run without the clock's lock held, so they may install or stop
// timers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.due(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.next
		t.next += t.interval
		fn := t.fn
		c.mu.Unlock()

		fn()
	}
}

func (c *ManualClock) due(target time.Duration) *manualTimer {
	var earliest *manualTimer
	for _, t := range c.timers {
		if t.next > target {
			continue
		}
		if earliest == nil || t.next < earliest.next {
			earliest = t
		}
	}
	return earliest
}

// Elapsed returns the total time advanced so far.
func (c *ManualClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the intervals of the timers that are still installed.
func (c *ManualClock) Pending() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]time.Duration, len(c.timers))
	for i, t := range c.timers {
		out[i] = t.interval
	}
	return out
}

func (t *manualTimer) Stop() {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = slices.DeleteFunc(c.timers, func(other *manualTimer) bool {
		return other == t
	})
}
