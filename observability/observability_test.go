package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.ServiceName != "duoguard" {
		t.Errorf("expected service name default, got %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected endpoint default, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{SampleRate: 2.0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate > 1")
	}
	cfg.SampleRate = 0.5
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecisionMetricsNilReceiver(t *testing.T) {
	var m *DecisionMetrics
	// Must not panic when metrics are not wired.
	m.Record(context.Background(), "duo_invite", "read", "deny", "not_participant", time.Millisecond)
}

func TestNewDecisionMetrics(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewDecisionMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewDecisionMetrics: %v", err)
	}
	m.Record(context.Background(), "challenge", "read", "allow", "allowed", time.Millisecond)
}
