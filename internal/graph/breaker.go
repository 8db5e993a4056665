package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings configures NewBreakerClient.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// BreakerClient stops calling the database after repeated failures and fails fast until
// the breaker half-opens again.
type BreakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerClient wraps next with a circuit breaker.
func NewBreakerClient(next Client, settings BreakerSettings, logger *slog.Logger) *BreakerClient {
	ratio := settings.ReadyToTripRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	st := gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("graph circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			}
		},
	}
	return &BreakerClient{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

// State exposes the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return b.run(func() (Result, error) { return b.next.ExecuteWrite(ctx, cypher, params) })
}

func (b *BreakerClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return b.run(func() (Result, error) { return b.next.ExecuteRead(ctx, cypher, params) })
}

// VerifyConnectivity bypasses the breaker so health probes always reach the server.
func (b *BreakerClient) VerifyConnectivity(ctx context.Context) error {
	return b.next.VerifyConnectivity(ctx)
}

func (b *BreakerClient) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}

func (b *BreakerClient) run(fn func() (Result, error)) (Result, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}
