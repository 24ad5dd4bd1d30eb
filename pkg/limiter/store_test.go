package limiter

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

func TestStateMapCreatesOnce(t *testing.T) {
	m := newStateMap(func() *int { return new(int) })

	a := m.load("k")
	b := m.load("k")
	assert.Same(t, a, b, "repeat loads must return the one stored value")
	assert.Equal(t, 1, m.size())
}

func TestStateMapDelete(t *testing.T) {
	m := newStateMap(func() *int { return new(int) })

	m.load("a")
	m.load("b")
	require.Equal(t, 2, m.size())

	m.delete("a")
	m.delete("a") // second delete is a no-op
	assert.Equal(t, 1, m.size())

	// deleted key is recreated fresh on next load
	assert.NotNil(t, m.load("a"))
	assert.Equal(t, 2, m.size())
}

func TestStateMapNotRacy(t *testing.T) {
	creates := atomic.NewInt64(0)
	m := newStateMap(func() *int64 {
		n := creates.Inc()
		return &n
	})

	var g errgroup.Group
	const loops = 100
	for i := 0; i < loops; i++ {
		key := strconv.Itoa(i)
		// load each key from two goroutines to race first access
		g.Go(func() error {
			assert.NotNil(t, m.load(key))
			return nil
		})
		g.Go(func() error {
			assert.NotNil(t, m.load(key))
			return nil
		})
		// and range concurrently with the writes
		g.Go(func() error {
			m.rangeAll(func(k string, v *int64) bool {
				assert.NotNil(t, v)
				return true
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// every key got exactly one stored value, even when create raced
	assert.Equal(t, loops, m.size())
	for i := 0; i < loops; i++ {
		key := strconv.Itoa(i)
		assert.Same(t, m.load(key), m.load(key), "key %s must be stable", key)
	}
}
