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

	"github.com/kbukum/gorest/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// CallMetrics counts REST calls and their latency per service, verb and
// outcome. A nil *CallMetrics records nothing.
type CallMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

// NewCallMetrics creates the instruments on meter.
func NewCallMetrics(meter metric.Meter) (*CallMetrics, error) {
	calls, err := meter.Int64Counter("rest.client.calls",
		metric.WithDescription("REST calls by service, method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rest.client.calls counter: %w", err)
	}

	duration, err := meter.Float64Histogram("rest.client.duration",
		metric.WithDescription("REST call duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rest.client.duration histogram: %w", err)
	}

	inflight, err := meter.Int64UpDownCounter("rest.client.active",
		metric.WithDescription("REST calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rest.client.active counter: %w", err)
	}

	return &CallMetrics{calls: calls, duration: duration, inflight: inflight}, nil
}

// Start marks a call as in flight.
func (m *CallMetrics) Start(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.inflight.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrService, service)))
}

// Record ends a call started with Start.
func (m *CallMetrics) Record(ctx context.Context, service, method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrService, service)))
	attrs := metric.WithAttributes(
		attribute.String(AttrService, service),
		attribute.String(AttrMethod, method),
		attribute.String(AttrOutcome, outcome),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
