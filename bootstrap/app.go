package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/gorest/component"
	"github.com/kbukum/gorest/config"
	"github.com/kbukum/gorest/logger"
	"github.com/kbukum/gorest/observability"
	"github.com/kbukum/gorest/rest"
)

// App owns the components of a gorest process: telemetry and the REST
// client registry. Components start in registration order and stop in
// reverse.
//
//	app, err := bootstrap.NewApp(cfg)
//	err = app.RunTask(ctx, func(ctx context.Context, a *bootstrap.App) error {
//	    c, err := a.Rest.Of("billing")
//	    ...
//	})
type App struct {
	Name       string
	Version    string
	Cfg        *config.Config
	Components *component.Registry
	Rest       *rest.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	out             io.Writer

	onStart []Hook
	onStop  []Hook
}

// NewApp validates cfg, initialises the global logger and registers the
// telemetry and REST components.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
		out:             os.Stdout,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.out != nil {
		app.out = o.out
	}

	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(cfg.Logging, cfg.Name)
		app.Logger = logger.GetGlobalLogger()
	}

	telemetry := observability.NewTelemetry(tracerConfig(cfg), meterConfig(cfg))
	if err := app.Components.Register(telemetry); err != nil {
		return nil, err
	}

	restOpts := []rest.Option{rest.WithLogger(app.Logger.WithComponent("rest"))}
	if cfg.Observability.MetricsEndpoint != "" {
		// Instruments bind to the real provider once telemetry starts.
		metrics, err := observability.NewCallMetrics(observability.Meter("gorest"))
		if err != nil {
			return nil, err
		}
		restOpts = append(restOpts, rest.WithMetrics(metrics))
	}
	app.Rest = rest.NewRegistry(cfg, append(restOpts, o.restOptions...)...)
	if err := app.Components.Register(app.Rest); err != nil {
		return nil, err
	}

	app.Summary = NewSummary(app.Name, app.Version)
	return app, nil
}

func tracerConfig(cfg *config.Config) observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.TracingEndpoint,
		Insecure:       cfg.Observability.Insecure,
		SampleRate:     cfg.Observability.SampleRate,
	}
}

func meterConfig(cfg *config.Config) observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Observability.MetricsEndpoint,
		Insecure:       cfg.Observability.Insecure,
		Interval:       cfg.Observability.MetricsInterval,
	}
}

// RegisterComponent adds a component after the built-in ones.
func (a *App) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// RunTask starts the components, runs task and shuts down. SIGINT and
// SIGTERM cancel the task context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context, app *App) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx, a)
	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Debug("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	a.Summary.SetStartupDuration(time.Since(start))
	return nil
}

// DisplaySummary writes the component summary and live health.
func (a *App) DisplaySummary(ctx context.Context) {
	a.Summary.Display(ctx, a.out, a.Components)
}

// Shutdown stops hooks and components. Use when not calling RunTask.
func (a *App) Shutdown() error {
	return a.stop()
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	a.Logger.Debug("Application shutdown complete")
	return shutdownErr
}
