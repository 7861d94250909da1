package mapping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/resilience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) List(ctx context.Context, version string) ([]Mapping, error) {
	args := m.Called(ctx, version)
	mappings, _ := args.Get(0).([]Mapping)
	return mappings, args.Error(1)
}

func newTestMetrics() *monitoring.Metrics {
	reg := prometheus.NewRegistry()
	return monitoring.NewMetricsWith(reg, reg)
}

func TestLookupSuccess(t *testing.T) {
	lister := new(mockLister)
	want := []Mapping{{Version: "1.0", OriginalSelector: "#a", ReplacementSelector: "#b", Confidence: 1}}
	lister.On("List", mock.Anything, "1.0").Return(want, nil)

	metrics := newTestMetrics()
	svc := NewService(lister, ServiceConfig{}, metrics, zap.NewNop())

	got, err := svc.Lookup(context.Background(), "1.0")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceCalls.WithLabelValues("mappings", "lookup", "success")))
	lister.AssertExpectations(t)
}

func TestLookupReturnsEmptySliceForNoRows(t *testing.T) {
	lister := new(mockLister)
	lister.On("List", mock.Anything, "").Return(nil, nil)

	svc := NewService(lister, ServiceConfig{}, nil, nil)

	got, err := svc.Lookup(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupAppliesQueryTimeout(t *testing.T) {
	lister := new(mockLister)
	lister.On("List", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 250*time.Millisecond
	}), "1.0").Return([]Mapping{}, nil)

	svc := NewService(lister, ServiceConfig{QueryTimeout: 250 * time.Millisecond}, nil, nil)

	_, err := svc.Lookup(context.Background(), "1.0")
	require.NoError(t, err)
	lister.AssertExpectations(t)
}

func TestLookupOpensBreakerAfterFailures(t *testing.T) {
	lister := new(mockLister)
	lister.On("List", mock.Anything, "1.0").Return(nil, errors.New("connection reset"))

	core, logs := observer.New(zap.WarnLevel)
	metrics := newTestMetrics()
	svc := NewService(lister, ServiceConfig{BreakerFailures: 2, BreakerOpenDelay: time.Hour}, metrics, zap.New(core))

	for i := 0; i < 2; i++ {
		_, err := svc.Lookup(context.Background(), "1.0")
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}
	assert.Equal(t, resilience.StateOpen, svc.BreakerState())
	assert.False(t, svc.Available())

	_, err := svc.Lookup(context.Background(), "1.0")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	lister.AssertNumberOfCalls(t, "List", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ServiceErrors.WithLabelValues("mappings", "lookup", "query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceErrors.WithLabelValues("mappings", "lookup", "circuit_open")))
	assert.Equal(t, float64(resilience.StateOpen), testutil.ToFloat64(metrics.BreakerState.WithLabelValues("mappings")))

	changes := logs.FilterMessage("circuit breaker state changed").All()
	require.Len(t, changes, 1)
	fields := changes[0].ContextMap()
	assert.Equal(t, "closed", fields["from"])
	assert.Equal(t, "open", fields["to"])
}

func TestLookupCallerCancellationDoesNotTrip(t *testing.T) {
	lister := new(mockLister)
	lister.On("List", mock.Anything, "1.0").Return(nil, context.Canceled)

	svc := NewService(lister, ServiceConfig{BreakerFailures: 1}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Lookup(ctx, "1.0")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, resilience.StateClosed, svc.BreakerState())
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "circuit_open", classifyError(resilience.ErrCircuitOpen))
	assert.Equal(t, "too_many_requests", classifyError(resilience.ErrTooManyRequests))
	assert.Equal(t, "timeout", classifyError(context.DeadlineExceeded))
	assert.Equal(t, "canceled", classifyError(context.Canceled))
	assert.Equal(t, "query", classifyError(errors.New("boom")))
}
