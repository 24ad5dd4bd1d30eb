package limiter

import (
	"time"

	"go.uber.org/zap"
)

// Option customizes a Limiter at construction time.
type Option func(*Limiter)

// WithClock substitutes the time source. Intended for tests; the default is
// the system clock.
func WithClock(c Clock) Option {
	return func(l *Limiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithRecorder injects a custom metrics backend. The default records nothing.
func WithRecorder(r MetricsRecorder) Option {
	return func(l *Limiter) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithLogger sets the logger used for debug-level rejection records. The
// default is a no-op logger, so rejections are silent.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIdleEviction enables the background janitor: state for keys that have
// not been seen for ttl is dropped, checked every sweepInterval. Call Close
// to stop the janitor. Both durations must be positive or eviction stays
// disabled.
//
// Without eviction, per-key state lives for the lifetime of the limiter,
// which is unbounded growth for high-cardinality key spaces.
func WithIdleEviction(ttl, sweepInterval time.Duration) Option {
	return func(l *Limiter) {
		if ttl > 0 && sweepInterval > 0 {
			l.idleTTL = ttl
			l.sweepEvery = sweepInterval
		}
	}
}
