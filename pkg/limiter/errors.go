package limiter

import "errors"

var (
	// ErrInvalidKey is returned per-call when the caller passes an empty key.
	ErrInvalidKey = errors.New("empty rate limit key")

	// ErrInvalidConfig is wrapped by New when required parameters for the
	// chosen algorithm are missing or out of range.
	ErrInvalidConfig = errors.New("invalid rate limiter configuration")
)
