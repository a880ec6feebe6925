package retry

import (
	"testing"
	"time"
)

// Delay-cap behavior under extreme attempt counts, where the raw exponential
// value overflows anything reasonable.

func TestExponentialBackoffStrategy_MaxDelayConstraint_NeverExceeds1Minute(t *testing.T) {
	strategy := NewExponentialBackoff(100,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	for attempt := 0; attempt <= 100; attempt++ {
		delay := strategy.NextDelay(attempt)
		if delay > time.Minute {
			t.Errorf("attempt %d: delay %v exceeds the 1m cap", attempt, delay)
		}
		// 100ms * 2^20 is already past a minute, so from there on the cap
		// must hold exactly.
		if attempt > 20 && delay != time.Minute {
			t.Errorf("attempt %d: delay = %v, want exactly the 1m cap", attempt, delay)
		}
	}
}

func TestExponentialBackoffStrategy_DefaultMaxDelay(t *testing.T) {
	if got := NewExponentialBackoff(10).MaxDelay(); got != 30*time.Second {
		t.Errorf("default MaxDelay = %v, want 30s", got)
	}
}

func TestExponentialBackoffStrategy_ProductionConfig(t *testing.T) {
	// Mirrors the connector's retry configuration, minus jitter.
	strategy := NewExponentialBackoff(3,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{10, time.Minute}, // capped
		{50, time.Minute}, // capped
	}
	for _, tt := range tests {
		if got := strategy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	if strategy.MaxAttempts() != 3 {
		t.Errorf("MaxAttempts = %d, want 3", strategy.MaxAttempts())
	}
}

func TestExponentialBackoffStrategy_TotalRetryTime(t *testing.T) {
	strategy := NewExponentialBackoff(3,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	var total time.Duration
	for attempt := 0; attempt < strategy.MaxAttempts(); attempt++ {
		total += strategy.NextDelay(attempt)
	}

	// 100ms + 200ms + 400ms
	if total != 700*time.Millisecond {
		t.Errorf("total retry delay = %v, want 700ms", total)
	}
}

func TestExponentialBackoffStrategy_MaxDelayCapAtHighAttempts(t *testing.T) {
	strategy := NewExponentialBackoff(50,
		WithInitialDelay(time.Second),
		WithMultiplier(3.0),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	// 1s * 3^10 is around sixteen hours uncapped
	if got := strategy.NextDelay(10); got != time.Minute {
		t.Errorf("NextDelay(10) = %v, want the 1m cap", got)
	}
	for attempt := 5; attempt <= 50; attempt++ {
		if got := strategy.NextDelay(attempt); got > time.Minute {
			t.Errorf("attempt %d: delay %v exceeds the 1m cap", attempt, got)
		}
	}
}
