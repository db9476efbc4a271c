package exporters

import (
	"context"
	"testing"
)

func TestIsTracingExporter(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{Stdout, true},
		{OTLP, true},
		{None, true},
		{"", true},
		{Prometheus, false},
		{"jaeger", false},
	}

	for _, tt := range tests {
		if got := IsTracingExporter(tt.name); got != tt.want {
			t.Errorf("IsTracingExporter(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsMetricsExporter(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{Stdout, true},
		{OTLP, true},
		{Prometheus, true},
		{None, true},
		{"statsd", false},
	}

	for _, tt := range tests {
		if got := IsMetricsExporter(tt.name); got != tt.want {
			t.Errorf("IsMetricsExporter(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{Stdout, None, ""} {
		exp, err := NewTracingExporter(ctx, name)
		if err != nil {
			t.Errorf("NewTracingExporter(%q) error = %v", name, err)
			continue
		}
		_ = exp.Shutdown(ctx)
	}

	if _, err := NewTracingExporter(ctx, "jaeger"); err == nil {
		t.Error("NewTracingExporter(jaeger) should fail")
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), OTLP); err == nil {
		t.Error("NewTracingExporter(otlp) without endpoint should fail")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{Stdout, None} {
		reader, err := NewMetricsReader(ctx, name)
		if err != nil {
			t.Errorf("NewMetricsReader(%q) error = %v", name, err)
			continue
		}
		if reader == nil {
			t.Errorf("NewMetricsReader(%q) returned nil reader", name)
		}
	}

	if _, err := NewMetricsReader(ctx, "statsd"); err == nil {
		t.Error("NewMetricsReader(statsd) should fail")
	}
}

func TestNewMetricsReader_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewMetricsReader(context.Background(), OTLP); err == nil {
		t.Error("NewMetricsReader(otlp) without endpoint should fail")
	}
}
