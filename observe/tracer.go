package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CheckKind distinguishes named checks from bare closures.
type CheckKind string

const (
	KindObject  CheckKind = "object"
	KindClosure CheckKind = "closure"
)

// CheckMeta describes a check for telemetry purposes.
type CheckMeta struct {
	Name  string // Check name (empty for closures)
	Kind  CheckKind
	Index int // Registration position within its kind
}

// DisplayName returns the name used in spans, metrics and logs.
// Closures have no name, so "closure" is used instead.
func (m CheckMeta) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return string(KindClosure)
}

// SpanName returns the deterministic span name for this check.
// Format: health.check.<name>
func (m CheckMeta) SpanName() string {
	return "health.check." + m.DisplayName()
}

// UpdateSpanName is the span name for a full status recomputation.
const UpdateSpanName = "health.update"

// Tracer wraps OpenTelemetry tracing with check-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: End* must be best-effort and must not panic.
type Tracer interface {
	// StartCheck starts a span for a single check evaluation.
	StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span)

	// EndCheck ends the span, marking it as an error when the check reported DOWN.
	EndCheck(span trace.Span, up bool)

	// StartUpdate starts a span covering a full recomputation.
	StartUpdate(ctx context.Context, checks int) (context.Context, trace.Span)

	// EndUpdate ends the recomputation span with the aggregate outcome.
	EndUpdate(span trace.Span, state string, failures int)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("check.name", meta.DisplayName()),
		attribute.String("check.kind", string(meta.Kind)),
		attribute.Int("check.index", meta.Index),
		attribute.Bool("check.down", false),
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndCheck(span trace.Span, up bool) {
	if up {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "check reported DOWN")
		span.SetAttributes(attribute.Bool("check.down", true))
	}
	span.End()
}

func (t *tracerImpl) StartUpdate(ctx context.Context, checks int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, UpdateSpanName,
		trace.WithAttributes(attribute.Int("health.checks", checks)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndUpdate(span trace.Span, state string, failures int) {
	span.SetAttributes(
		attribute.String("health.state", state),
		attribute.Int("health.failures", failures),
	)
	span.SetStatus(codes.Ok, "")
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartCheck(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndCheck(span trace.Span, _ bool) {
	span.End()
}

func (t *noopTracer) StartUpdate(ctx context.Context, _ int) (context.Context, trace.Span) {
	return t.noop.Start(ctx, UpdateSpanName)
}

func (t *noopTracer) EndUpdate(span trace.Span, _ string, _ int) {
	span.End()
}
