package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(4)

	if b.InitialDelay() != 50*time.Millisecond {
		t.Errorf("InitialDelay() = %v, want 50ms", b.InitialDelay())
	}
	if b.MaxDelay() != 2*time.Second {
		t.Errorf("MaxDelay() = %v, want 2s", b.MaxDelay())
	}
	if b.MaxAttempts() != 4 {
		t.Errorf("MaxAttempts() = %d, want 4", b.MaxAttempts())
	}
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	tests := []struct {
		name    string
		opts    []BackoffOption
		attempt int
		want    time.Duration
	}{
		{"first retry", nil, 0, 50 * time.Millisecond},
		{"doubles", nil, 1, 100 * time.Millisecond},
		{"doubles again", nil, 3, 400 * time.Millisecond},
		{"capped", nil, 10, 2 * time.Second},
		{"far past cap", nil, 200, 2 * time.Second},
		{"custom initial", []BackoffOption{WithInitialDelay(10 * time.Millisecond)}, 2, 40 * time.Millisecond},
		{"custom multiplier", []BackoffOption{WithMultiplier(3)}, 2, 450 * time.Millisecond},
		{"custom cap", []BackoffOption{WithMaxDelay(75 * time.Millisecond)}, 1, 75 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]BackoffOption{WithJitter(0)}, tt.opts...)
			got := NewExponentialBackoff(4, opts...).NextDelay(tt.attempt)
			if got != tt.want {
				t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{"lowest", 0.0, 90 * time.Millisecond},
		{"middle", 0.5, 100 * time.Millisecond},
		{"high", 0.75, 105 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(4,
				WithInitialDelay(100*time.Millisecond),
				WithJitter(0.1),
				WithJitterFunc(func() float64 { return tt.random }),
			)
			if got := b.NextDelay(0); got != tt.want {
				t.Errorf("NextDelay(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExponentialBackoff_RealJitterStaysInBounds(t *testing.T) {
	b := NewExponentialBackoff(4, WithInitialDelay(100*time.Millisecond), WithJitter(0.2))

	for i := 0; i < 100; i++ {
		d := b.NextDelay(0)
		if d < 80*time.Millisecond || d > 120*time.Millisecond {
			t.Fatalf("NextDelay(0) = %v, want within [80ms, 120ms]", d)
		}
	}
}
