package tabload

import "time"

// ErrorClassifier decides whether a failed operation is worth retrying.
type ErrorClassifier interface {
	// IsTransient reports whether the error is temporary, e.g. a dropped
	// connection rather than a bad password.
	IsTransient(err error) bool
}

// BackoffStrategy controls the pacing of retry attempts.
type BackoffStrategy interface {
	// NextDelay returns how long to wait before retry number attempt,
	// counted from zero.
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the retry budget: 0 disables retries, -1 removes
	// the limit.
	MaxAttempts() int
}
