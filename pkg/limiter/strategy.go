package limiter

import (
	"fmt"
	"sync"
	"time"
)

// strategy is implemented by the four algorithms. A strategy holds only the
// immutable configuration; all mutable accounting lives in the per-key state
// it manufactures.
type strategy interface {
	kind() Kind
	newState(now time.Time) limitState
}

// limitState is the mutable per-key accounting for one algorithm. decide
// and idleSince require the state's lock. States are owned by the limiter's
// store and must not be retained across calls.
type limitState interface {
	lock()
	unlock()
	decide(now time.Time) Decision
	idleSince() time.Time
}

// stateCore is embedded by every per-key state: one mutex per key so that
// distinct keys never contend, plus the last-access time the janitor uses.
type stateCore struct {
	mu       sync.Mutex
	lastSeen time.Time
}

func (c *stateCore) lock()   { c.mu.Lock() }
func (c *stateCore) unlock() { c.mu.Unlock() }

func (c *stateCore) touch(now time.Time) { c.lastSeen = now }

func (c *stateCore) idleSince() time.Time { return c.lastSeen }

// buildStrategy maps a Config to exactly one algorithm variant, validating
// the parameters that variant requires. The kind set is closed; per-call
// code never branches on Kind again.
func buildStrategy(cfg Config) (strategy, error) {
	switch cfg.Kind {
	case TokenBucket:
		if cfg.Capacity < 1 {
			return nil, fmt.Errorf("token bucket capacity must be >= 1, got %d: %w", cfg.Capacity, ErrInvalidConfig)
		}
		if cfg.RefillRatePerSecond < 0 {
			return nil, fmt.Errorf("token bucket refill rate must be >= 0, got %g: %w", cfg.RefillRatePerSecond, ErrInvalidConfig)
		}
		return &tokenBucket{capacity: cfg.Capacity, refillPerSecond: cfg.RefillRatePerSecond}, nil

	case LeakyBucket:
		if cfg.Capacity < 1 {
			return nil, fmt.Errorf("leaky bucket capacity must be >= 1, got %d: %w", cfg.Capacity, ErrInvalidConfig)
		}
		if cfg.LeakRatePerSecond < 0 {
			return nil, fmt.Errorf("leaky bucket leak rate must be >= 0, got %g: %w", cfg.LeakRatePerSecond, ErrInvalidConfig)
		}
		return &leakyBucket{capacity: cfg.Capacity, leakPerSecond: cfg.LeakRatePerSecond}, nil

	case FixedWindow:
		if err := validateWindow(cfg); err != nil {
			return nil, err
		}
		return &fixedWindow{limit: cfg.Limit, window: cfg.Window}, nil

	case SlidingWindowLog:
		if err := validateWindow(cfg); err != nil {
			return nil, err
		}
		return &slidingWindowLog{limit: cfg.Limit, window: cfg.Window}, nil

	default:
		return nil, fmt.Errorf("unknown algorithm kind %q: %w", cfg.Kind, ErrInvalidConfig)
	}
}

func validateWindow(cfg Config) error {
	if cfg.Limit < 1 {
		return fmt.Errorf("%s limit must be >= 1, got %d: %w", cfg.Kind, cfg.Limit, ErrInvalidConfig)
	}
	if cfg.Window < time.Millisecond {
		return fmt.Errorf("%s window must be >= 1ms, got %v: %w", cfg.Kind, cfg.Window, ErrInvalidConfig)
	}
	return nil
}
