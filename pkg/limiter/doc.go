// Package limiter provides in-process, per-client admission control with a
// choice of limiting algorithms.
//
// The primary entry point is New plus the RateLimiter interface:
//
//	l, err := limiter.New(limiter.Config{
//		Kind:                limiter.TokenBucket,
//		Capacity:            10,
//		RefillRatePerSecond: 5,
//	})
//	...
//	if !l.Allow("user_123") {
//		// reject with 429 / requeue / drop
//	}
//
// Allow answers one question: should this unit of work for this key be
// admitted right now. Keys are opaque caller-supplied strings (user ID, IP,
// API key); the limiter never interprets them. AllowDecision returns the
// full Decision with the remaining budget and timing hints for callers that
// want to set rate-limit headers (for example, Retry-After).
//
// # Algorithms
//
// Four algorithms share the same API and differ in their trade-offs:
//
//   - TokenBucket: a bucket accumulates tokens at RefillRatePerSecond up to
//     Capacity; each admit consumes one. Supports bursts up to Capacity while
//     enforcing a long-term average rate. O(1) memory per key.
//
//   - LeakyBucket: a queue of depth Capacity drains at LeakRatePerSecond;
//     admission is gated by remaining queue room. Smooths rather than
//     bursts: idle time earns no credit. O(1) memory per key.
//
//   - FixedWindow: counts requests in aligned windows of Window length that
//     reset at each boundary. Cheapest, but a client can land up to
//     2*Limit-1 requests straddling a boundary. O(1) memory per key.
//
//   - SlidingWindowLog: keeps the timestamps of admitted requests inside the
//     trailing window; exact with no boundary exception. O(Limit) memory and
//     O(Limit) pruning per key.
//
// # Per-key state and concurrency
//
// State for a key is created lazily on its first decision (full bucket,
// empty window) and mutated in place afterwards. The limiter is safe for
// concurrent use: each key carries its own lock, so decisions for one key
// are linearizable (no lost updates, no double-admission past capacity)
// while distinct keys never contend with each other. Allow is synchronous
// and non-blocking; it performs no I/O and holds no lock beyond the key's
// critical section.
//
// # Decision semantics
//
// A rejection is a normal outcome, not an error. Decision fields are meant
// to be directly consumable by integration code:
//
//   - Allow reports whether the request is permitted.
//   - Limit is the configured capacity or window limit.
//   - Remaining is the whole tokens/slots left after the decision.
//   - RetryAfter is 0 when allowed; when denied it approximates the wait
//     until capacity frees up.
//   - ResetTime is the absolute instant corresponding to that wait.
//
// The only per-call error is ErrInvalidKey for an empty key. Configuration
// problems surface once, from New, wrapping ErrInvalidConfig.
//
// # Observability
//
// WithRecorder injects a MetricsRecorder that receives allowed/rejected
// counters tagged by key and algorithm. WithLogger injects a zap logger;
// rejections are logged at debug level only, so the default is silent.
//
// # Limitations and notes
//
//   - State is process-local. This package does not coordinate limits across
//     replicas; put a shared limiter in front of the fleet if you need a
//     single global budget.
//   - Limits are fixed at construction. To change them, build a new limiter.
//   - Without WithIdleEviction, per-key state is never freed; long-lived
//     processes with high-cardinality keys should enable eviction or expect
//     memory growth proportional to the number of distinct keys seen.
//   - Each Allow call has a fixed cost of 1 token/slot/count.
//
// # Configuration
//
// New takes the algorithm Config and Functional Options:
//
//	l, _ := limiter.New(cfg,
//		limiter.WithRecorder(myMetrics),
//		limiter.WithLogger(logger),
//		limiter.WithIdleEviction(15*time.Minute, time.Minute),
//	)
//
// Supported options:
//
//   - WithClock(Clock): substitute the time source (tests).
//   - WithRecorder(MetricsRecorder): inject a metrics backend.
//   - WithLogger(*zap.Logger): debug-level rejection logging.
//   - WithIdleEviction(ttl, interval): drop state for idle keys.
package limiter
