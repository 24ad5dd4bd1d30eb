package limiter

import "time"

// Kind identifies a limiting algorithm.
type Kind string

const (
	TokenBucket      Kind = "token_bucket"
	LeakyBucket      Kind = "leaky_bucket"
	FixedWindow      Kind = "fixed_window"
	SlidingWindowLog Kind = "sliding_window_log"
)

// Config selects an algorithm and its numeric parameters. Which fields are
// required depends on Kind; see New for the validation rules.
type Config struct {
	Kind Kind

	// Bucket algorithms (TokenBucket, LeakyBucket).
	Capacity            int
	RefillRatePerSecond float64 // TokenBucket only
	LeakRatePerSecond   float64 // LeakyBucket only

	// Window algorithms (FixedWindow, SlidingWindowLog).
	Limit  int
	Window time.Duration
}

// Decision captures the result of a single admission check.
type Decision struct {
	Allow      bool
	Limit      int64         // configured capacity/limit for the key
	Remaining  int64         // whole tokens/slots left after this decision
	RetryAfter time.Duration // 0 when allowed; approximate wait when denied
	ResetTime  time.Time     // when the window/bucket next frees capacity
}

// RateLimiter is the decision surface consumed by callers (HTTP middleware,
// RPC interceptors, queue admission gates).
type RateLimiter interface {
	// Allow reports whether a request for key is admitted. It returns false
	// both for a rejection verdict and for a malformed (empty) key; use
	// AllowDecision when the distinction matters.
	Allow(key string) bool

	// AllowDecision is Allow with the full verdict. A rejection is a normal
	// Decision with Allow=false, never an error; the only per-call error is
	// ErrInvalidKey.
	AllowDecision(key string) (Decision, error)
}
