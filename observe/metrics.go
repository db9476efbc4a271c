package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricCheckTotal    = "health.check.total"
	MetricCheckDown     = "health.check.down"
	MetricCheckDuration = "health.check.duration_ms"
	MetricUpdateTotal   = "health.update.total"
)

// Metrics records check evaluation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCheck records a single check evaluation.
	RecordCheck(ctx context.Context, meta CheckMeta, duration time.Duration, up bool)

	// RecordUpdate records a full recomputation and its aggregate state.
	RecordUpdate(ctx context.Context, state string)
}

type metricsImpl struct {
	checkTotal   metric.Int64Counter
	checkDown    metric.Int64Counter
	durationHist metric.Float64Histogram
	updateTotal  metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	checkTotal, err := meter.Int64Counter(
		MetricCheckTotal,
		metric.WithDescription("Total number of check evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	checkDown, err := meter.Int64Counter(
		MetricCheckDown,
		metric.WithDescription("Total number of check evaluations that reported DOWN"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricCheckDuration,
		metric.WithDescription("Check evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	updateTotal, err := meter.Int64Counter(
		MetricUpdateTotal,
		metric.WithDescription("Total number of status recomputations"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		checkTotal:   checkTotal,
		checkDown:    checkDown,
		durationHist: durationHist,
		updateTotal:  updateTotal,
	}, nil
}

func (m *metricsImpl) RecordCheck(ctx context.Context, meta CheckMeta, duration time.Duration, up bool) {
	opt := metric.WithAttributes(
		attribute.String("check.name", meta.DisplayName()),
		attribute.String("check.kind", string(meta.Kind)),
	)

	m.checkTotal.Add(ctx, 1, opt)
	if !up {
		m.checkDown.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordUpdate(ctx context.Context, state string) {
	m.updateTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("health.state", state),
	))
}

type noopMetrics struct{}

func (noopMetrics) RecordCheck(context.Context, CheckMeta, time.Duration, bool) {}
func (noopMetrics) RecordUpdate(context.Context, string)                        {}
