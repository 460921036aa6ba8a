package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/paripprabhu/sneakopedia/internal/domain"
	apperrors "github.com/paripprabhu/sneakopedia/pkg/errors"
)

// BreakerConfig holds circuit breaker configuration for the store.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed in half-open state.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration
	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration
	// FailureRatio trips the breaker once this share of requests fails.
	FailureRatio float64
	// MinRequests is the minimum sample size before the ratio is evaluated.
	MinRequests uint32
}

// DefaultBreakerConfig returns sensible defaults for the store breaker.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var storeBreakerState = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "catalog_store_breaker_state",
		Help: "Current state of the catalog store circuit breaker (0=closed, 1=half-open, 2=open)",
	},
)

func init() {
	prometheus.MustRegister(storeBreakerState)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// BreakerRepository wraps a SneakerRepository with a circuit breaker so a
// struggling store sheds load instead of stacking up timed-out requests.
// A missing record is a normal outcome and never counts as a failure.
type BreakerRepository struct {
	inner   SneakerRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerRepository wraps an existing repository with a circuit breaker.
func NewBreakerRepository(inner SneakerRepository, cfg BreakerConfig, logger *slog.Logger) *BreakerRepository {
	settings := gobreaker.Settings{
		Name:        "catalog-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			storeBreakerState.Set(stateToFloat(to))
		},
	}

	storeBreakerState.Set(0)

	return &BreakerRepository{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// execute runs fn through the breaker, translating a rejected call into the
// same dependency-unavailable error a failed store call would produce.
func (r *BreakerRepository) execute(fn func() (any, error)) (any, error) {
	v, err := r.breaker.Execute(fn)
	if err != nil && errors.Is(err, gobreaker.ErrOpenState) {
		return nil, apperrors.ServiceUnavailable(err)
	}
	return v, err
}

func (r *BreakerRepository) GetByID(ctx context.Context, id string) (*domain.Sneaker, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Sneaker), nil
}

func (r *BreakerRepository) List(ctx context.Context, filter SneakerFilter, sort string, page, pageSize int) ([]domain.Sneaker, int, error) {
	type listResult struct {
		sneakers []domain.Sneaker
		total    int
	}
	v, err := r.execute(func() (any, error) {
		sneakers, total, err := r.inner.List(ctx, filter, sort, page, pageSize)
		if err != nil {
			return nil, err
		}
		return listResult{sneakers, total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	res := v.(listResult)
	return res.sneakers, res.total, nil
}

func (r *BreakerRepository) ListIDs(ctx context.Context, filter SneakerFilter, limit int) ([]string, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.ListIDs(ctx, filter, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (r *BreakerRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Sneaker, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.GetByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Sneaker), nil
}

func (r *BreakerRepository) Random(ctx context.Context) (*domain.Sneaker, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.Random(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Sneaker), nil
}

func (r *BreakerRepository) Count(ctx context.Context, filter SneakerFilter) (int, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.Count(ctx, filter)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (r *BreakerRepository) Brands(ctx context.Context) ([]string, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.Brands(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// State returns the current state of the circuit breaker.
func (r *BreakerRepository) State() gobreaker.State {
	return r.breaker.State()
}
