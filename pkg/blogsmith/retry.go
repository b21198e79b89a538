package blogsmith

import "time"

// ErrorClassifier decides whether a failed operation is worth repeating.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts is the retry limit: 0 disables retries, -1 means unlimited.
	MaxAttempts() int
}
