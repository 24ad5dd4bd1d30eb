package limiter

import (
	"math"
	"time"
)

// leakyBucket models a queue draining at a constant rate. Admission is gated
// by remaining queue capacity, so it smooths traffic instead of bursting: an
// empty queue admits at most capacity requests before draining catches up,
// and there is no accumulated-token credit for idle time.
type leakyBucket struct {
	capacity      int
	leakPerSecond float64
}

func (lb *leakyBucket) kind() Kind { return LeakyBucket }

// newState starts with an empty queue.
func (lb *leakyBucket) newState(now time.Time) limitState {
	return &leakyBucketState{
		strat:    lb,
		lastLeak: now,
	}
}

type leakyBucketState struct {
	stateCore
	strat    *leakyBucket
	queued   float64
	lastLeak time.Time
}

func (s *leakyBucketState) decide(now time.Time) Decision {
	elapsed := now.Sub(s.lastLeak)
	if elapsed > 0 {
		s.queued = math.Max(0, s.queued-elapsed.Seconds()*s.strat.leakPerSecond)
		s.lastLeak = now
	}
	s.touch(now)

	capacity := float64(s.strat.capacity)
	if s.queued+1 <= capacity {
		s.queued++
		return Decision{
			Allow:     true,
			Limit:     int64(s.strat.capacity),
			Remaining: int64(capacity - s.queued),
			ResetTime: now,
		}
	}

	// Wait until enough has leaked for one more slot.
	var wait time.Duration
	if s.strat.leakPerSecond > 0 {
		overflow := s.queued + 1 - capacity
		wait = time.Duration(overflow / s.strat.leakPerSecond * float64(time.Second))
	}
	return Decision{
		Allow:      false,
		Limit:      int64(s.strat.capacity),
		Remaining:  int64(capacity - s.queued),
		RetryAfter: wait,
		ResetTime:  now.Add(wait),
	}
}
