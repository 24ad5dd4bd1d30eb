package limiter

import (
	"math"
	"time"
)

// tokenBucket admits bursts up to capacity and refills continuously at a
// fixed rate. A zero refill rate is legal but degenerate: the bucket never
// refills after its initial fill.
type tokenBucket struct {
	capacity        int
	refillPerSecond float64
}

func (tb *tokenBucket) kind() Kind { return TokenBucket }

// newState starts full, so the configured burst is available immediately.
func (tb *tokenBucket) newState(now time.Time) limitState {
	return &tokenBucketState{
		strat:      tb,
		tokens:     float64(tb.capacity),
		lastRefill: now,
	}
}

type tokenBucketState struct {
	stateCore
	strat      *tokenBucket
	tokens     float64
	lastRefill time.Time
}

func (s *tokenBucketState) decide(now time.Time) Decision {
	// Fractional-second refill: truncating elapsed time to whole seconds
	// silently drops partial refill and under-serves long-short-long call
	// patterns.
	elapsed := now.Sub(s.lastRefill)
	if elapsed > 0 {
		s.tokens = math.Min(float64(s.strat.capacity), s.tokens+elapsed.Seconds()*s.strat.refillPerSecond)
		s.lastRefill = now
	}
	s.touch(now)

	if s.tokens >= 1 {
		s.tokens--
		return Decision{
			Allow:     true,
			Limit:     int64(s.strat.capacity),
			Remaining: int64(s.tokens),
			ResetTime: now,
		}
	}

	var wait time.Duration
	if s.strat.refillPerSecond > 0 {
		missing := 1 - s.tokens
		wait = time.Duration(missing / s.strat.refillPerSecond * float64(time.Second))
	}
	return Decision{
		Allow:      false,
		Limit:      int64(s.strat.capacity),
		Remaining:  int64(s.tokens),
		RetryAfter: wait,
		ResetTime:  now.Add(wait),
	}
}
