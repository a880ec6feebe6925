package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoffStrategy_DefaultValues(t *testing.T) {
	strategy := NewExponentialBackoff(3)

	checks := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"InitialDelay", strategy.InitialDelay(), 100 * time.Millisecond},
		{"MaxDelay", strategy.MaxDelay(), 30 * time.Second},
		{"Multiplier", strategy.Multiplier(), 2.0},
		{"Jitter", strategy.Jitter(), 0.1},
		{"MaxAttempts", strategy.MaxAttempts(), 3},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestExponentialBackoffStrategy_NextDelay_WithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	// 100ms doubling per attempt
	for attempt, want := range []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	} {
		if got := strategy.NextDelay(attempt); got != want {
			t.Errorf("NextDelay(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestExponentialBackoffStrategy_NextDelay_MaxDelayCap(t *testing.T) {
	strategy := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)

	// uncapped would be 100ms * 2^10 = 102.4s
	if got := strategy.NextDelay(10); got != time.Second {
		t.Errorf("NextDelay(10) = %v, want the 1s cap", got)
	}
}

func TestExponentialBackoffStrategy_NextDelay_WithJitter(t *testing.T) {
	// The jitter func maps [0,1) onto a [-jitter,+jitter] factor around the
	// base delay, so pinned values give exact expected outputs.
	tests := []struct {
		jitterValue float64
		want        time.Duration
	}{
		{0.0, 90 * time.Millisecond},  // factor 1 + 0.1*(-1)
		{0.5, 100 * time.Millisecond}, // factor 1 + 0.1*0
		{1.0, 110 * time.Millisecond}, // factor 1 + 0.1*(+1)
	}

	for _, tt := range tests {
		strategy := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithMultiplier(2.0),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return tt.jitterValue }),
		)
		if got := strategy.NextDelay(0); got != tt.want {
			t.Errorf("NextDelay(0) with jitter value %v = %v, want %v", tt.jitterValue, got, tt.want)
		}
	}
}

func TestExponentialBackoffStrategy_NextDelay_DifferentMultipliers(t *testing.T) {
	tests := []struct {
		multiplier float64
		attempt    int
		want       time.Duration
	}{
		{1.5, 0, 100 * time.Millisecond},
		{1.5, 1, 150 * time.Millisecond},
		{1.5, 2, 225 * time.Millisecond},
		{3.0, 0, 100 * time.Millisecond},
		{3.0, 1, 300 * time.Millisecond},
		{3.0, 2, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		strategy := NewExponentialBackoff(5,
			WithInitialDelay(100*time.Millisecond),
			WithMultiplier(tt.multiplier),
			WithJitter(0),
		)
		if got := strategy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(attempt=%d, multiplier=%v) = %v, want %v",
				tt.attempt, tt.multiplier, got, tt.want)
		}
	}
}

func TestExponentialBackoffStrategy_Chaining(t *testing.T) {
	strategy := NewExponentialBackoff(3,
		WithInitialDelay(50*time.Millisecond),
		WithMaxDelay(5*time.Second),
		WithMultiplier(3.0),
		WithJitter(0.2),
	)

	if strategy.InitialDelay() != 50*time.Millisecond ||
		strategy.MaxDelay() != 5*time.Second ||
		strategy.Multiplier() != 3.0 ||
		strategy.Jitter() != 0.2 ||
		strategy.MaxAttempts() != 3 {
		t.Errorf("options not applied: delay=%v max=%v mult=%v jitter=%v attempts=%d",
			strategy.InitialDelay(), strategy.MaxDelay(), strategy.Multiplier(),
			strategy.Jitter(), strategy.MaxAttempts())
	}
}

func TestExponentialBackoffStrategy_MaxAttempts_Variations(t *testing.T) {
	// -1 means unlimited retries
	for _, maxAttempts := range []int{0, 1, 5, -1} {
		strategy := NewExponentialBackoff(maxAttempts)
		if strategy.MaxAttempts() != maxAttempts {
			t.Errorf("MaxAttempts() = %d, want %d", strategy.MaxAttempts(), maxAttempts)
		}
	}
}

func TestExponentialBackoffStrategy_RealWorldScenario(t *testing.T) {
	// 200ms doubling, capped at 10s, 5 retries: the cap never engages and
	// exhausting all attempts waits 6.2s in total.
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(200*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(10*time.Second),
		WithJitter(0),
	)

	var total time.Duration
	for attempt, want := range []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
	} {
		got := strategy.NextDelay(attempt)
		if got != want {
			t.Errorf("attempt %d: delay = %v, want %v", attempt, got, want)
		}
		total += got
	}

	if total != 6200*time.Millisecond {
		t.Errorf("total delay = %v, want 6.2s", total)
	}
}
