package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPolicyDelay(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		retry  int
		want   time.Duration
	}{
		{"fixed", NewPolicy(BackoffFixed, time.Second, 10*time.Second, 3), 3, time.Second},
		{"linear", NewPolicy(BackoffLinear, time.Second, 10*time.Second, 3), 3, 3 * time.Second},
		{"linear capped", NewPolicy(BackoffLinear, 4*time.Second, 10*time.Second, 5), 4, 10 * time.Second},
		{"exponential", NewPolicy(BackoffExponential, time.Second, 10*time.Second, 5), 3, 4 * time.Second},
		{"exponential capped", NewPolicy(BackoffExponential, time.Second, 10*time.Second, 5), 5, 10 * time.Second},
		{"zero retry", DefaultPolicy(), 0, 0},
	}
	for _, tc := range cases {
		if got := tc.policy.Delay(tc.retry); got != tc.want {
			t.Fatalf("%s: delay = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestNewPolicyFallsBackToDefaults(t *testing.T) {
	p := NewPolicy("bogus", 0, 0, -1)
	if p != DefaultPolicy() {
		t.Fatalf("expected defaults, got %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 2)
	calls := 0
	var retried []int
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, func(attempt int, _ error) { retried = append(retried, attempt) })
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 || len(retried) != 2 || retried[1] != 2 {
		t.Fatalf("unexpected calls=%d retried=%v", calls, retried)
	}
}

func TestDoReturnsLastError(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 1)
	sentinel := errors.New("still broken")
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	}, nil)
	if !errors.Is(err, sentinel) || calls != 2 {
		t.Fatalf("expected sentinel after 2 calls, got %v after %d", err, calls)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Hour, time.Hour, 3)
	ctx, cancel := context.WithCancel(context.Background())
	sentinel := errors.New("down")
	err := p.Do(ctx, func(context.Context) error { return sentinel }, func(int, error) { cancel() })
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}
