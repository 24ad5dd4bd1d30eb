package limiter

import (
	"sync"
	"time"
)

// fakeClock is a manually-advanced Clock for deterministic refill and
// window math in tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// newFakeClock starts at an instant aligned to whole 10s windows so
// fixed-window tests begin at a boundary.
func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
