package limiter

import "time"

// Clock is the single source of time for all algorithms. Refill and window
// math never reads the wall clock directly, so tests can substitute a fake
// via WithClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
