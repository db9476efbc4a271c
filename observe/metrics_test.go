package observe

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

// TestMetrics_CheckCounters verifies total and down counters.
func TestMetrics_CheckCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := CheckMeta{Name: "db", Kind: KindObject}

	m.RecordCheck(ctx, meta, time.Millisecond, true)
	m.RecordCheck(ctx, meta, time.Millisecond, false)
	m.RecordCheck(ctx, meta, time.Millisecond, false)

	rm := collect(t, reader)

	total := findMetric(rm, MetricCheckTotal)
	if total == nil {
		t.Fatalf("%s metric not found", MetricCheckTotal)
	}
	if got := sumValue(t, total); got != 3 {
		t.Errorf("expected total 3, got %d", got)
	}

	down := findMetric(rm, MetricCheckDown)
	if down == nil {
		t.Fatalf("%s metric not found", MetricCheckDown)
	}
	if got := sumValue(t, down); got != 2 {
		t.Errorf("expected down 2, got %d", got)
	}
}

// TestMetrics_DownCounterOnUp verifies the down counter is not incremented for UP checks.
func TestMetrics_DownCounterOnUp(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordCheck(context.Background(), CheckMeta{Kind: KindClosure}, time.Millisecond, true)

	rm := collect(t, reader)
	if down := findMetric(rm, MetricCheckDown); down != nil && sumValue(t, down) != 0 {
		t.Errorf("expected no down count, got %d", sumValue(t, down))
	}
}

// TestMetrics_DurationHistogramRecords verifies check duration is recorded in milliseconds.
func TestMetrics_DurationHistogramRecords(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordCheck(context.Background(), CheckMeta{Name: "db"}, 250*time.Millisecond, true)

	found := findMetric(collect(t, reader), MetricCheckDuration)
	if found == nil {
		t.Fatalf("%s metric not found", MetricCheckDuration)
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(hist.DataPoints))
	}
	if hist.DataPoints[0].Sum != 250 {
		t.Errorf("expected sum 250, got %v", hist.DataPoints[0].Sum)
	}
}

// TestMetrics_LabelsApplied verifies check.name and check.kind attributes.
func TestMetrics_LabelsApplied(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordCheck(context.Background(), CheckMeta{Kind: KindClosure, Index: 3}, time.Millisecond, true)

	found := findMetric(collect(t, reader), MetricCheckTotal)
	if found == nil {
		t.Fatalf("%s metric not found", MetricCheckTotal)
	}
	sum := found.Data.(metricdata.Sum[int64])
	attrs := sum.DataPoints[0].Attributes

	if v, ok := attrs.Value(attribute.Key("check.name")); !ok || v.AsString() != "closure" {
		t.Errorf("expected check.name='closure', got %v", v.AsString())
	}
	if v, ok := attrs.Value(attribute.Key("check.kind")); !ok || v.AsString() != "closure" {
		t.Errorf("expected check.kind='closure', got %v", v.AsString())
	}
}

// TestMetrics_UpdateCounter verifies recomputations are counted per state.
func TestMetrics_UpdateCounter(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordUpdate(ctx, "UP")
	m.RecordUpdate(ctx, "DOWN")
	m.RecordUpdate(ctx, "DOWN")

	found := findMetric(collect(t, reader), MetricUpdateTotal)
	if found == nil {
		t.Fatalf("%s metric not found", MetricUpdateTotal)
	}
	sum := found.Data.(metricdata.Sum[int64])
	if len(sum.DataPoints) != 2 {
		t.Fatalf("expected 2 data points (UP, DOWN), got %d", len(sum.DataPoints))
	}
	for _, dp := range sum.DataPoints {
		state, _ := dp.Attributes.Value(attribute.Key("health.state"))
		want := int64(1)
		if state.AsString() == "DOWN" {
			want = 2
		}
		if dp.Value != want {
			t.Errorf("expected %s count %d, got %d", state.AsString(), want, dp.Value)
		}
	}
}

// TestMetrics_ConcurrentRecording verifies thread-safe recording.
func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			m.RecordCheck(ctx, CheckMeta{Name: "db"}, time.Millisecond, i%2 == 0)
		}()
	}
	wg.Wait()

	found := findMetric(collect(t, reader), MetricCheckTotal)
	if found == nil {
		t.Fatalf("%s metric not found", MetricCheckTotal)
	}
	if got := sumValue(t, found); got != goroutines {
		t.Errorf("expected total %d, got %d", goroutines, got)
	}
}
