package limiter

import "time"

// slidingWindowLog keeps the timestamp of every admitted request still inside
// the trailing window. It is the exact algorithm: for any interval of one
// window length the admitted count never exceeds the limit, with no boundary
// exception. Cost is O(limit) memory and O(limit) pruning per key, which is
// why it serves as the reference the cheaper algorithms are validated
// against in tests.
type slidingWindowLog struct {
	limit  int
	window time.Duration
}

func (sw *slidingWindowLog) kind() Kind { return SlidingWindowLog }

func (sw *slidingWindowLog) newState(now time.Time) limitState {
	return &slidingWindowLogState{
		strat: sw,
		log:   make([]time.Time, 0, sw.limit),
	}
}

type slidingWindowLogState struct {
	stateCore
	strat *slidingWindowLog
	log   []time.Time // ordered, oldest first, len <= limit after an allow
}

func (s *slidingWindowLogState) decide(now time.Time) Decision {
	// Drop everything at or before now-window from the front.
	cutoff := now.Add(-s.strat.window)
	keep := 0
	for keep < len(s.log) && !s.log[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		// Compact in place so the backing array stays capped at limit.
		s.log = append(s.log[:0], s.log[keep:]...)
	}
	s.touch(now)

	if len(s.log) < s.strat.limit {
		s.log = append(s.log, now)
		return Decision{
			Allow:     true,
			Limit:     int64(s.strat.limit),
			Remaining: int64(s.strat.limit - len(s.log)),
			ResetTime: s.log[0].Add(s.strat.window),
		}
	}

	reset := s.log[0].Add(s.strat.window)
	return Decision{
		Allow:      false,
		Limit:      int64(s.strat.limit),
		Remaining:  0,
		RetryAfter: reset.Sub(now),
		ResetTime:  reset,
	}
}
