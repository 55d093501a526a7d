package as6mig

import "time"

// ErrorClassifier decides whether a failed operation may succeed when repeated.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy spaces out repeated attempts.
type BackoffStrategy interface {
	// NextDelay is the wait before retry number attempt, counting from zero.
	NextDelay(attempt int) time.Duration

	// MaxAttempts is the number of retries after the first try; 0 disables retrying.
	MaxAttempts() int
}
