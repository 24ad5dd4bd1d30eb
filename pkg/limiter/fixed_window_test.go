package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowWithinWindow(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   FixedWindow,
		Limit:  3,
		Window: 10 * time.Second,
	}, clock)

	assert.Equal(t, 3, countAllowed(l, "k", 3))

	dec, err := l.AllowDecision("k")
	require.NoError(t, err)
	assert.False(t, dec.Allow)
	assert.Equal(t, 10*time.Second, dec.RetryAfter, "fresh window starts at the boundary")

	clock.Advance(10 * time.Second)
	assert.True(t, l.Allow("k"))
}

func TestFixedWindowRolloverForfeitsRemainder(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   FixedWindow,
		Limit:  5,
		Window: 10 * time.Second,
	}, clock)

	// one request, then cross the boundary: the unused 4 do not carry over
	// and the full limit is available again
	require.True(t, l.Allow("k"))
	clock.Advance(10 * time.Second)
	assert.Equal(t, 5, countAllowed(l, "k", 6))
}

func TestFixedWindowEdgeBurst(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   FixedWindow,
		Limit:  3,
		Window: 10 * time.Second,
	}, clock)

	// late in one window and early in the next, a client can land up to
	// 2*limit requests back to back, but never more than limit per window
	clock.Advance(9 * time.Second)
	assert.Equal(t, 3, countAllowed(l, "k", 4))

	clock.Advance(time.Second)
	assert.Equal(t, 3, countAllowed(l, "k", 4))
}

func TestFixedWindowStartAlignment(t *testing.T) {
	fw := &fixedWindow{limit: 1, window: 10 * time.Second}

	now := time.Unix(1_700_000_000, 0).Add(7*time.Second + 123*time.Millisecond)
	start := fw.startFor(now)
	assert.Zero(t, start%fw.window.Milliseconds(), "window start must be an exact multiple of the window size")
	assert.LessOrEqual(t, start, now.UnixMilli())
	assert.Greater(t, start+fw.window.Milliseconds(), now.UnixMilli())
}

func TestFixedWindowSubSecondWindow(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, Config{
		Kind:   FixedWindow,
		Limit:  2,
		Window: 100 * time.Millisecond,
	}, clock)

	require.Equal(t, 2, countAllowed(l, "k", 3))
	clock.Advance(100 * time.Millisecond)
	assert.True(t, l.Allow("k"))
}
