package observe

import (
	"context"
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		ServiceName: "healthd",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, ErrMissingServiceName},
		{"unknown tracing exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, ErrInvalidTracingExporter},
		{"prometheus is not a tracing exporter", func(c *Config) { c.Tracing.Exporter = "prometheus" }, ErrInvalidTracingExporter},
		{"unknown metrics exporter", func(c *Config) { c.Metrics.Exporter = "statsd" }, ErrInvalidMetricsExporter},
		{"sample pct above range", func(c *Config) { c.Tracing.SamplePct = 1.5 }, ErrInvalidSamplePct},
		{"sample pct negative", func(c *Config) { c.Tracing.SamplePct = -0.1 }, ErrInvalidSamplePct},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"disabled tracing skips checks", func(c *Config) {
			c.Tracing = TracingConfig{Exporter: "jaeger", SamplePct: 9}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "healthd"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("expected non-nil tracer, meter and logger")
	}
	if _, ok := obs.Logger().(noopLogger); !ok {
		t.Errorf("expected noop logger when logging disabled, got %T", obs.Logger())
	}
}

func TestNewObserver_Enabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	mw.Wrap(func(context.Context, CheckMeta) bool { return true })(context.Background(), CheckMeta{Name: "db"})

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver() error = %v, want ErrMissingServiceName", err)
	}
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := NopLogger().WithCheck(CheckMeta{Name: "db"})
	ctx := context.Background()

	l.Debug(ctx, "d")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, "e", Field{Key: "k", Value: 1})
}
