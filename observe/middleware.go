package observe

import (
	"context"
	"time"
)

// EvaluateFunc evaluates a single check and reports whether it is UP.
type EvaluateFunc func(ctx context.Context, check CheckMeta) bool

// UpdateFunc performs a full recomputation and returns the aggregate state
// name ("UP" or "DOWN") together with the number of failed checks.
type UpdateFunc func(ctx context.Context) (state string, failures int)

// Middleware wraps check evaluation with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: wrapped functions are safe for concurrent use.
//   - Context: propagates context through tracing spans.
//   - Ownership: the wrapped function's result is returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability
// components. Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap wraps an EvaluateFunc with a span, metrics and a debug log line.
func (m *Middleware) Wrap(fn EvaluateFunc) EvaluateFunc {
	return func(ctx context.Context, check CheckMeta) bool {
		ctx, span := m.tracer.StartCheck(ctx, check)
		start := time.Now()

		up := fn(ctx, check)

		duration := time.Since(start)
		m.tracer.EndCheck(span, up)
		m.metrics.RecordCheck(ctx, check, duration, up)

		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
			{Key: "up", Value: up},
		}
		checkLogger := m.logger.WithCheck(check)
		if up {
			checkLogger.Debug(ctx, "check evaluated", fields...)
		} else {
			checkLogger.Warn(ctx, "check reported DOWN", fields...)
		}

		return up
	}
}

// WrapUpdate wraps a full recomputation with a span and an update counter.
func (m *Middleware) WrapUpdate(checks int, fn UpdateFunc) UpdateFunc {
	return func(ctx context.Context) (string, int) {
		ctx, span := m.tracer.StartUpdate(ctx, checks)
		start := time.Now()

		state, failures := fn(ctx)

		m.tracer.EndUpdate(span, state, failures)
		m.metrics.RecordUpdate(ctx, state)
		m.logger.Debug(ctx, "health status recomputed",
			Field{Key: "state", Value: state},
			Field{Key: "checks", Value: checks},
			Field{Key: "failures", Value: failures},
			Field{Key: "duration_ms", Value: float64(time.Since(start).Microseconds()) / 1000},
		)

		return state, failures
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
