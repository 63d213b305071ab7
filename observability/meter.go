package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/girojogos/duoguard/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields("endpoint", cfg.Endpoint))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// DecisionMetrics holds the instruments recording authorization outcomes.
type DecisionMetrics struct {
	decisionTotal metric.Int64Counter
	evalDuration  metric.Float64Histogram
}

// NewDecisionMetrics creates the decision instruments on the given meter.
func NewDecisionMetrics(meter metric.Meter) (*DecisionMetrics, error) {
	decisionTotal, err := meter.Int64Counter("authz.decisions",
		metric.WithDescription("Authorization decisions by pattern, operation, effect, and reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authz.decisions counter: %w", err)
	}

	evalDuration, err := meter.Float64Histogram("authz.evaluation.duration",
		metric.WithDescription("Policy evaluation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authz.evaluation.duration histogram: %w", err)
	}

	return &DecisionMetrics{
		decisionTotal: decisionTotal,
		evalDuration:  evalDuration,
	}, nil
}

// Record records one decision. Safe to call on a nil receiver so callers
// can run without metrics wired.
func (m *DecisionMetrics) Record(ctx context.Context, pattern, op, effect, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("pattern", pattern),
		attribute.String("operation", op),
		attribute.String("effect", effect),
		attribute.String("reason", reason),
	)
	m.decisionTotal.Add(ctx, 1, attrs)
	m.evalDuration.Record(ctx, elapsed.Seconds(), attrs)
}
