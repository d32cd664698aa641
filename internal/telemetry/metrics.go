package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "foodorder/orders"

// OrderMetrics records order lifecycle metrics. A nil *OrderMetrics records
// nothing.
type OrderMetrics struct {
	placed        metric.Int64Counter
	transitions   metric.Int64Counter
	expired       metric.Int64Counter
	sweepDuration metric.Float64Histogram
}

// NewOrderMetrics creates the instruments on mp.
func NewOrderMetrics(mp metric.MeterProvider) (*OrderMetrics, error) {
	meter := mp.Meter(meterName)

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders accepted by the API"))
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter("orders.transitions",
		metric.WithDescription("Explicit order status transitions"))
	if err != nil {
		return nil, err
	}

	expired, err := meter.Int64Counter("orders.expired",
		metric.WithDescription("Pending orders canceled by the expiry sweep"))
	if err != nil {
		return nil, err
	}

	sweepDuration, err := meter.Float64Histogram("orders.sweep.duration",
		metric.WithDescription("Duration of expiry sweeps"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &OrderMetrics{
		placed:        placed,
		transitions:   transitions,
		expired:       expired,
		sweepDuration: sweepDuration,
	}, nil
}

func (m *OrderMetrics) Placed(ctx context.Context) {
	if m == nil {
		return
	}
	m.placed.Add(ctx, 1)
}

// Transitioned counts a user or operator driven transition into status.
func (m *OrderMetrics) Transitioned(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// SweepFinished records one expiry sweep.
func (m *OrderMetrics) SweepFinished(ctx context.Context, elapsed time.Duration, expired int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sweepDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
	if expired > 0 {
		m.expired.Add(ctx, int64(expired))
	}
}
