package limiter

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Limiter binds one algorithm to a keyed state store and exposes the
// admission decision API. It is safe for concurrent use; decisions for the
// same key are serialized by that key's own lock, and distinct keys never
// contend with each other.
type Limiter struct {
	strat    strategy
	states   *stateMap[limitState]
	clock    Clock
	recorder MetricsRecorder
	counting bool   // false while recorder is the no-op
	kindTag  string // strat.kind(), converted once
	logger   *zap.Logger

	// idle-key eviction, disabled unless WithIdleEviction is used
	idleTTL    time.Duration
	sweepEvery time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

var _ RateLimiter = (*Limiter)(nil)

// New builds a limiter for the given configuration. It fails with an error
// wrapping ErrInvalidConfig when required parameters for cfg.Kind are
// missing or out of range; configuration errors are fatal to the instance
// and never retried internally.
//
// Two calls with identical configuration produce limiters with identical,
// fully independent state.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	strat, err := buildStrategy(cfg)
	if err != nil {
		return nil, err
	}

	l := &Limiter{
		strat:    strat,
		clock:    systemClock{},
		recorder: &NoOpMetricsRecorder{},
		logger:   zap.NewNop(),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	_, noop := l.recorder.(*NoOpMetricsRecorder)
	l.counting = !noop
	l.kindTag = string(strat.kind())
	l.states = newStateMap(func() limitState {
		return strat.newState(l.clock.Now())
	})

	if l.idleTTL > 0 && l.sweepEvery > 0 {
		l.wg.Add(1)
		go l.sweepLoop()
	}
	return l, nil
}

// Allow reports whether a request for key is admitted. A malformed key also
// yields false; use AllowDecision to tell the two apart.
func (l *Limiter) Allow(key string) bool {
	dec, err := l.AllowDecision(key)
	if err != nil {
		return false
	}
	return dec.Allow
}

// AllowDecision performs one check-then-mutate admission decision for key.
// It never blocks beyond the key's critical section and performs no I/O.
func (l *Limiter) AllowDecision(key string) (Decision, error) {
	if key == "" {
		return Decision{}, ErrInvalidKey
	}

	st := l.states.load(key)
	st.lock()
	// The clock is read while holding the key's lock: lock acquisition
	// order then matches timestamp order, so each state sees a
	// non-decreasing sequence of nows. Read before the lock, a caller
	// delayed between Now() and lock() could feed a stale timestamp after
	// a newer one, rolling a fixed window backwards or appending out of
	// order to a sliding log.
	dec := st.decide(l.clock.Now())
	st.unlock()

	l.observe(key, dec)
	return dec, nil
}

// Keys returns the number of keys currently holding state.
func (l *Limiter) Keys() int {
	return l.states.size()
}

// Close stops the eviction janitor, if any. It can be called any number of
// times. Per-key state is not cleared; the limiter remains usable, which
// keeps Close safe to defer alongside in-flight traffic during shutdown.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.wg.Wait()
	})
}

func (l *Limiter) observe(key string, dec Decision) {
	// The tags map is only built for a real recorder; the default no-op
	// path stays allocation-free.
	if l.counting {
		tags := map[string]string{
			"key":       key,
			"algorithm": l.kindTag,
		}
		if dec.Allow {
			l.recorder.Add(metricAllowed, 1, tags)
		} else {
			l.recorder.Add(metricRejected, 1, tags)
		}
	}
	if !dec.Allow {
		// Rejections are a normal verdict; keep them out of logs unless
		// the caller opted into a debug-level logger.
		l.logger.Debug("rate limit exceeded",
			zap.String("key", key),
			zap.String("algorithm", l.kindTag),
			zap.Duration("retry_after", dec.RetryAfter),
		)
	}
}

func (l *Limiter) sweepLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stopCh:
			return
		}
	}
}

// sweep drops state for keys idle longer than the TTL. A caller racing with
// the sweep may finish one decision against evicted state; its next call
// recreates the key at initial capacity, which for an idle key is the same
// answer a surviving state would have produced.
func (l *Limiter) sweep() {
	cutoff := l.clock.Now().Add(-l.idleTTL)
	l.states.rangeAll(func(key string, st limitState) bool {
		st.lock()
		idle := st.idleSince().Before(cutoff)
		st.unlock()
		if idle {
			l.states.delete(key)
		}
		return true
	})
}
