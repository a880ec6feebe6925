// Package retry wraps operations that may hit transient database failures
// and re-runs them with exponential backoff.
//
// An Executor combines two pluggable pieces: an ErrorClassifier, which
// decides whether a failure is worth retrying, and a BackoffStrategy, which
// decides how long to wait between attempts. Neither is database specific,
// but the provided PostgreSQLErrorClassifier knows the usual suspects:
// connection refused, dropped connections, serialization failures, and the
// SQLSTATE classes PostgreSQL uses for them.
//
//	classifier := retry.NewPostgreSQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// ExponentialBackoff doubles the delay per attempt by default, with a
// configurable cap and jitter to keep reconnecting clients from stampeding.
//
// Executors are safe for concurrent use; WithOnRetry returns a copy, so
// per-goroutine callbacks never race.
package retry
