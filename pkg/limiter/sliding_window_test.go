package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLogAgesOutOldestFirst(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   SlidingWindowLog,
		Limit:  3,
		Window: 10 * time.Second,
	}, clock)

	// t=0, 1, 2: all admitted
	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("k"), "call at t=%d", i)
		clock.Advance(time.Second)
	}

	// t=3: three still active
	require.False(t, l.Allow("k"))

	// t=11: the t=0 entry has aged out
	clock.Advance(8 * time.Second)
	assert.True(t, l.Allow("k"))
}

func TestSlidingWindowLogPrunesAtExactBoundary(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   SlidingWindowLog,
		Limit:  1,
		Window: time.Second,
	}, clock)

	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))

	// a timestamp exactly one window old no longer counts
	clock.Advance(time.Second)
	assert.True(t, l.Allow("k"))
}

// TestSlidingWindowLogExactBound checks the defining property: for any
// trailing interval of one window length, the admitted count never exceeds
// the limit. This is the reference behavior the cheaper algorithms
// approximate.
func TestSlidingWindowLogExactBound(t *testing.T) {
	const limit = 5
	const window = time.Second

	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   SlidingWindowLog,
		Limit:  limit,
		Window: window,
	}, clock)

	var admitted []time.Time
	for i := 0; i < 60; i++ {
		clock.Advance(100 * time.Millisecond)
		now := clock.Now()
		if l.Allow("k") {
			admitted = append(admitted, now)
		}

		inWindow := 0
		for _, ts := range admitted {
			if ts.After(now.Add(-window)) {
				inWindow++
			}
		}
		require.LessOrEqual(t, inWindow, limit, "window bound violated at step %d", i)
	}
	assert.NotEmpty(t, admitted)
}

func TestSlidingWindowLogRetryAfter(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   SlidingWindowLog,
		Limit:  2,
		Window: 10 * time.Second,
	}, clock)

	require.True(t, l.Allow("k"))
	clock.Advance(4 * time.Second)
	require.True(t, l.Allow("k"))

	dec, err := l.AllowDecision("k")
	require.NoError(t, err)
	assert.False(t, dec.Allow)
	assert.Equal(t, 6*time.Second, dec.RetryAfter, "oldest entry frees its slot 10s after it was admitted")
}
