package retry

import (
	"context"
	"time"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Executor runs an operation until it succeeds, fails fatally or runs out of retries.
// Safe for concurrent use; WithOnRetry returns a copy.
type Executor struct {
	classifier as6mig.ErrorClassifier
	strategy   as6mig.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an Executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier as6mig.ErrorClassifier, strategy as6mig.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// NoRetry returns an Executor that runs the operation exactly once.
func NoRetry() *Executor {
	return NewExecutor(NewFileLockClassifier(), NewExponentialBackoff(0))
}

// WithOnRetry returns a copy of e that calls callback before every wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation and retries transient failures.
// The error of the last attempt is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	max := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err) && attempt < max; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
