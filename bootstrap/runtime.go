package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kbukum/depin/assembly"
	"github.com/kbukum/depin/config"
	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/errors"
	"github.com/kbukum/depin/logger"
	"github.com/kbukum/depin/observability"
	"github.com/kbukum/depin/version"
)

const defaultGracefulTimeout = 15 * time.Second

// Runtime owns the registry, the assembler and the telemetry providers of a
// host process.
type Runtime struct {
	Name    string
	Version string
	Cfg     *config.Config
	Logger  *logger.Logger
	Summary *Summary

	store     *env.Store
	container di.Container
	assembler *assembly.Assembler

	telemetry *observability.Providers

	gracefulTimeout time.Duration

	mu       sync.Mutex
	onStop   []Hook
	shutdown bool
}

// Load reads the configuration of serviceName. See config.Load.
func Load(serviceName string, opts ...config.LoaderOption) (*config.Config, error) {
	return config.Load(serviceName, opts...)
}

// New creates a runtime from cfg. An empty cfg.Version is filled from the
// build info. New applies defaults, validates the config,
// initializes the logger and, when enabled, telemetry. The container and the
// assembler are stored under di.RegistryKey and assembly.AssemblerKey, and
// cfg itself is registered as *config.Config.
func New(cfg *config.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.InvalidConfig("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	r := &Runtime{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: defaultGracefulTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = env.Default()
	}
	if r.Logger == nil {
		logger.Init(cfg.Logging)
		logger.RegisterDefaults()
		r.Logger = logger.GetGlobalLogger()
	}

	metrics, err := r.initTelemetry(context.Background())
	if err != nil {
		return nil, err
	}

	if r.container == nil {
		scope, _ := di.ParseScope(cfg.Registry.DefaultScope)
		r.container = di.NewContainer(
			di.WithDefaultScope(scope),
			di.WithLogger(r.Logger.WithComponent(logger.ComponentRegistry)),
			di.WithMetrics(metrics),
		)
	}
	r.assembler = assembly.New(r.container,
		assembly.WithLogger(r.Logger.WithComponent(logger.ComponentAssembly)),
		assembly.WithMetrics(metrics),
	)

	di.RegisterValue(r.container, cfg)
	env.Set(r.store, di.RegistryKey, r.container)
	env.Set(r.store, assembly.AssemblerKey, r.assembler)

	r.Summary = NewSummary(cfg.Name, cfg.Version)
	r.Logger.Info("runtime initialized", logger.Fields(
		"name", r.Name,
		"environment", cfg.Environment,
		logger.FieldScope, cfg.Registry.DefaultScope,
		logger.FieldContainerID, r.container.ID(),
		"telemetry", cfg.Telemetry.Enabled,
	))
	return r, nil
}

// initTelemetry starts the OTLP providers when enabled and returns the
// registry metrics. Metrics are nil when telemetry is disabled.
func (r *Runtime) initTelemetry(ctx context.Context) (*observability.Metrics, error) {
	t := r.Cfg.Telemetry
	if !t.Enabled {
		return nil, nil
	}

	oc := observability.DefaultConfig(r.Cfg.Name)
	oc.ServiceVersion = r.Cfg.Version
	oc.Environment = r.Cfg.Environment
	oc.Endpoint = t.Endpoint
	oc.Insecure = t.Insecure
	oc.Interval = t.Interval
	oc.SampleRate = t.SampleRate

	p, err := observability.Init(ctx, oc)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	r.telemetry = p
	return p.Metrics, nil
}

// Store returns the store the runtime published into.
func (r *Runtime) Store() *env.Store { return r.store }

// Container returns the registry.
func (r *Runtime) Container() di.Container { return r.container }

// Assembler returns the assembler bound to the registry.
func (r *Runtime) Assembler() *assembly.Assembler { return r.assembler }

// Apply applies a batch of assemblies. See assembly.Assembler.Apply.
func (r *Runtime) Apply(assemblies ...assembly.Assembly) {
	r.assembler.ApplyContext(context.Background(), assemblies...)
}

// ApplyContext applies a batch of assemblies under ctx.
func (r *Runtime) ApplyContext(ctx context.Context, assemblies ...assembly.Assembly) {
	r.assembler.ApplyContext(ctx, assemblies...)
}

// Run logs the startup summary, blocks until an OS signal or ctx is done and
// then shuts down.
func (r *Runtime) Run(ctx context.Context) error {
	r.DisplaySummary()

	r.Logger.Info("Runtime ready, waiting for shutdown signal")
	r.WaitForSignal(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.gracefulTimeout)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}

// DisplaySummary logs the registrations of the container.
func (r *Runtime) DisplaySummary() {
	r.Summary.Collect(r.container)
	r.Summary.Display(r.Logger)
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (r *Runtime) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		r.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields(
			"signal", sig.String(),
		))
		return sig
	case <-ctx.Done():
		r.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown runs the OnStop hooks, closes the container and flushes the
// telemetry providers. Errors from every step are joined. Calling Shutdown
// more than once is a no-op.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		return nil
	}
	r.shutdown = true
	hooks := r.onStop
	r.mu.Unlock()

	r.Logger.Info("Shutting down runtime", logger.Fields(
		logger.FieldContainerID, r.container.ID(),
	))

	var errs []error
	if err := runHooks(ctx, hooks); err != nil {
		r.Logger.Error("stop hooks failed", logger.ErrorFields("shutdown", err))
		errs = append(errs, err)
	}
	if err := r.container.Close(); err != nil {
		r.Logger.Error("container close failed", logger.ErrorFields("shutdown", err))
		errs = append(errs, err)
	}
	if err := r.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	r.Logger.Info("Runtime shutdown complete")
	return stderrors.Join(errs...)
}
