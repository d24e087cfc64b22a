package loginguard

import (
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("expected disabled metrics to stay zero")
	}

	snapshot := m.Snapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Histograms) != 0 {
		t.Fatal("expected empty snapshot when disabled")
	}
}

func TestMetricsCountersAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLockoutTriggered)

	if m.Value(MetricLoginSuccess) != 2 {
		t.Fatalf("expected 2, got %d", m.Value(MetricLoginSuccess))
	}

	snapshot := m.Snapshot()
	if snapshot.Counters[MetricLoginSuccess] != 2 {
		t.Fatalf("expected snapshot counter 2, got %d", snapshot.Counters[MetricLoginSuccess])
	}
	if snapshot.Counters[MetricLockoutTriggered] != 1 {
		t.Fatalf("expected snapshot counter 1, got %d", snapshot.Counters[MetricLockoutTriggered])
	}
	if len(snapshot.Histograms) != 0 {
		t.Fatal("expected no histograms without latency enabled")
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricValidateLatency, 3*time.Millisecond)
	m.Observe(MetricValidateLatency, 30*time.Millisecond)
	m.Observe(MetricValidateLatency, time.Second)

	snapshot := m.Snapshot()
	buckets, ok := snapshot.Histograms[MetricValidateLatency]
	if !ok {
		t.Fatal("expected validate latency histogram")
	}
	if buckets[0] != 1 || buckets[3] != 1 || buckets[7] != 1 {
		t.Fatalf("unexpected bucket distribution %v", buckets)
	}

	// Only the validate latency id is histogram-backed.
	m.Observe(MetricLoginSuccess, time.Millisecond)
	if len(m.Snapshot().Histograms) != 1 {
		t.Fatal("expected a single histogram series")
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricValidateLatency, time.Millisecond)
	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("expected zero from nil metrics")
	}
	if m.Enabled() || m.LatencyEnabled() {
		t.Fatal("expected nil metrics to report disabled")
	}
	snapshot := m.Snapshot()
	if len(snapshot.Counters) != 0 {
		t.Fatal("expected empty snapshot from nil metrics")
	}
}
