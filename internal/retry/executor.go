package retry

import (
	"context"
	"time"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// Executor runs an operation, retrying transient failures per a backoff
// strategy. Execute is safe for concurrent use; WithOnRetry returns a copy so
// callers can attach callbacks without sharing state.
type Executor struct {
	classifier tabload.ErrorClassifier
	strategy   tabload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor panics on a nil classifier or strategy; both are programming
// errors, not runtime conditions.
func NewExecutor(classifier tabload.ErrorClassifier, strategy tabload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of the executor that invokes callback before
// each retry wait. The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation, retrying while the classifier deems the failure
// transient. The first attempt always runs; up to MaxAttempts retries follow
// (negative means unlimited). Cancellation is honored between attempts and
// during backoff waits.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return err
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if werr := waitBackoff(ctx, delay); werr != nil {
			return werr
		}

		err = operation(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
	}

	// Retries exhausted; surface the last transient error.
	return err
}

func waitBackoff(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
