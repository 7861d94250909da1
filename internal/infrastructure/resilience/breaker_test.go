package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQuery = errors.New("connection refused")

func succeed(context.Context) error { return nil }
func fail(context.Context) error    { return errQuery }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens at failure threshold",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 3},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "success resets consecutive failures",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 2},
			requests:      []bool{false, true, false},
			expectedState: StateClosed,
		},
		{
			name: "custom trip function wins over threshold",
			settings: Settings{
				Interval:         time.Minute,
				Timeout:          time.Minute,
				FailureThreshold: 1,
				ReadyToTrip: func(counts Counts) bool {
					return counts.TotalFailures >= 2
				},
			},
			requests:      []bool{false, true, false},
			expectedState: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := New("test", tt.settings)

			for _, success := range tt.requests {
				fn := fail
				if success {
					fn = succeed
				}
				_ = breaker.Run(context.Background(), fn)
			}

			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute})

	require.NoError(t, breaker.Run(context.Background(), succeed))

	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	err := breaker.Run(context.Background(), fail)
	assert.ErrorIs(t, err, errQuery)

	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenState(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 2})

	for i := 0; i < 2; i++ {
		_ = breaker.Run(context.Background(), fail)
	}
	assert.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Run(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open breaker must not call through")
}

func TestBreakerHalfOpenState(t *testing.T) {
	breaker := New("test", Settings{
		MaxRequests:      2,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 2,
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Run(context.Background(), fail)
	}
	assert.Equal(t, StateOpen, breaker.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	for i := 0; i < 2; i++ {
		require.NoError(t, breaker.Run(context.Background(), succeed))
	}
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: 10 * time.Millisecond, FailureThreshold: 1})

	_ = breaker.Run(context.Background(), fail)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateHalfOpen, breaker.State())

	_ = breaker.Run(context.Background(), fail)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string

	breaker := New("mappings", Settings{
		Interval:         time.Minute,
		Timeout:          10 * time.Millisecond,
		FailureThreshold: 2,
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, fmt.Sprintf("%s:%s->%s", name, from, to))
		},
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Run(context.Background(), fail)
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	assert.Equal(t, []string{"mappings:closed->open", "mappings:open->half-open"}, transitions)
}

func TestBreakerIgnoresCallerCancellation(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 1})

	ctx, cancel := context.WithCancel(context.Background())
	err := breaker.Run(ctx, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, Counts{}, breaker.Counts())

	err = breaker.Run(ctx, succeed)
	assert.ErrorIs(t, err, context.Canceled, "already cancelled context is rejected up front")
}

func TestCall(t *testing.T) {
	breaker := New("test", Settings{})

	got, err := Call(context.Background(), breaker, func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	got, err = Call(context.Background(), breaker, func(context.Context) ([]string, error) {
		return []string{"partial"}, errQuery
	})
	assert.ErrorIs(t, err, errQuery)
	assert.Nil(t, got)
}

func TestBreakerRepanics(t *testing.T) {
	breaker := New("test", Settings{FailureThreshold: 1})

	assert.Panics(t, func() {
		_ = breaker.Run(context.Background(), func(context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
