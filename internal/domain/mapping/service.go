package mapping

import (
	"context"
	"errors"
	"time"

	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/resilience"
	"go.uber.org/zap"
)

const serviceName = "mappings"

// Lister reads mappings for a version.
type Lister interface {
	List(ctx context.Context, version string) ([]Mapping, error)
}

// ServiceConfig tunes the lookup path.
type ServiceConfig struct {
	QueryTimeout     time.Duration
	BreakerFailures  uint32
	BreakerOpenDelay time.Duration
}

// Service guards mapping reads with a timeout and a circuit breaker.
type Service struct {
	lister  Lister
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	log     *zap.Logger
	timeout time.Duration
}

// NewService wraps lister. metrics may be nil.
func NewService(lister Lister, cfg ServiceConfig, metrics *monitoring.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}

	s := &Service{
		lister:  lister,
		metrics: metrics,
		log:     logger.Named("mapping_service"),
		timeout: cfg.QueryTimeout,
	}
	s.breaker = resilience.New(serviceName, resilience.Settings{
		FailureThreshold: cfg.BreakerFailures,
		Timeout:          cfg.BreakerOpenDelay,
		OnStateChange: func(name string, from, to resilience.State) {
			s.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if s.metrics != nil {
				s.metrics.SetBreakerState(name, int(to))
			}
		},
	})
	if metrics != nil {
		metrics.SetBreakerState(serviceName, int(resilience.StateClosed))
	}
	return s
}

// Lookup returns the mappings for version, or all mappings when version is
// empty. The result is never nil on success.
func (s *Service) Lookup(ctx context.Context, version string) ([]Mapping, error) {
	timer := monitoring.NewTimer(s.metrics, serviceName, "lookup")

	mappings, err := resilience.Call(ctx, s.breaker, func(ctx context.Context) ([]Mapping, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.lister.List(ctx, version)
	})
	if err != nil {
		errType := classifyError(err)
		timer.Stop("error")
		if s.metrics != nil {
			s.metrics.RecordServiceError(serviceName, "lookup", errType)
		}
		s.log.Error("mapping lookup failed",
			zap.String("version", version),
			zap.String("error_type", errType),
			zap.Error(err))
		return nil, err
	}

	timer.Stop("success")
	if mappings == nil {
		mappings = []Mapping{}
	}
	return mappings, nil
}

// BreakerState reports the state of the lookup breaker.
func (s *Service) BreakerState() resilience.State {
	return s.breaker.State()
}

// Available reports whether lookups are currently being attempted.
func (s *Service) Available() bool {
	return s.breaker.State() != resilience.StateOpen
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, resilience.ErrTooManyRequests):
		return "too_many_requests"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "query"
	}
}
