package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/gorest/component"
)

// Telemetry is a component owning the trace and meter providers. An empty
// endpoint leaves that signal on the global no-op provider.
type Telemetry struct {
	mu     sync.Mutex
	tracer TracerConfig
	meter  MeterConfig
	tp     *sdktrace.TracerProvider
	mp     *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// NewTelemetry creates the component. Providers are installed on Start.
func NewTelemetry(tracer TracerConfig, meter MeterConfig) *Telemetry {
	return &Telemetry{tracer: tracer, meter: meter}
}

func (t *Telemetry) Name() string { return "telemetry" }

func (t *Telemetry) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tracer.Endpoint != "" && t.tp == nil {
		tp, err := InitTracer(ctx, t.tracer)
		if err != nil {
			return err
		}
		t.tp = tp
	}
	if t.meter.Endpoint != "" && t.mp == nil {
		mp, err := InitMeter(ctx, t.meter)
		if err != nil {
			return err
		}
		t.mp = mp
	}
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	return errors.Join(errs...)
}

func (t *Telemetry) Health(context.Context) component.Health {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if t.tp == nil && t.mp == nil {
		h.Message = "export disabled"
	}
	return h
}

func (t *Telemetry) Describe() component.Description {
	return component.Description{
		Name:    "Telemetry",
		Type:    "telemetry",
		Details: fmt.Sprintf("traces=%s metrics=%s", orOff(t.tracer.Endpoint), orOff(t.meter.Endpoint)),
	}
}

func orOff(endpoint string) string {
	if endpoint == "" {
		return "off"
	}
	return endpoint
}
