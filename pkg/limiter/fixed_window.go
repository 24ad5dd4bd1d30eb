package limiter

import "time"

// fixedWindow counts requests in aligned, non-overlapping windows that reset
// completely at each boundary. O(1) memory per key, at the cost of the
// well-known edge burst: a client can land up to 2*limit-1 requests across a
// window boundary. That is a property of the algorithm, not a bug; callers
// choosing FixedWindow accept it.
type fixedWindow struct {
	limit  int
	window time.Duration
}

func (fw *fixedWindow) kind() Kind { return FixedWindow }

func (fw *fixedWindow) newState(now time.Time) limitState {
	s := &fixedWindowState{strat: fw}
	s.windowStart = fw.startFor(now)
	return s
}

// startFor aligns now to an exact multiple of the window size since the
// Unix epoch. Pre-epoch clocks are not supported.
func (fw *fixedWindow) startFor(now time.Time) int64 {
	windowMillis := fw.window.Milliseconds()
	return now.UnixMilli() / windowMillis * windowMillis
}

type fixedWindowState struct {
	stateCore
	strat       *fixedWindow
	windowStart int64 // unix millis, aligned to the window size
	count       int
}

func (s *fixedWindowState) decide(now time.Time) Decision {
	start := s.strat.startFor(now)
	if start != s.windowStart {
		// Rollover forfeits any unused remainder of the previous window.
		s.windowStart = start
		s.count = 0
	}
	s.touch(now)

	reset := time.UnixMilli(s.windowStart + s.strat.window.Milliseconds())
	if s.count < s.strat.limit {
		s.count++
		return Decision{
			Allow:     true,
			Limit:     int64(s.strat.limit),
			Remaining: int64(s.strat.limit - s.count),
			ResetTime: reset,
		}
	}
	return Decision{
		Allow:      false,
		Limit:      int64(s.strat.limit),
		Remaining:  0,
		RetryAfter: reset.Sub(now),
		ResetTime:  reset,
	}
}
