package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/depin/logger"
)

// Providers bundles the meter and tracer providers started by Init together
// with the registry instruments created on the meter.
type Providers struct {
	Meter   *sdkmetric.MeterProvider
	Tracer  *sdktrace.TracerProvider
	Metrics *Metrics
}

// Init starts both providers for cfg. On failure nothing stays running.
func Init(ctx context.Context, cfg Config) (*Providers, error) {
	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}
	metrics, err := NewMetrics(mp.Meter(TracerName))
	if err != nil {
		_ = errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
		return nil, err
	}

	logger.Get(logger.ComponentBootstrap).Info("telemetry initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
		"sample_rate", cfg.SampleRate,
	))
	return &Providers{Meter: mp, Tracer: tp, Metrics: metrics}, nil
}

// Shutdown flushes and stops both providers. A nil *Providers is a no-op.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// newResource describes the service. The service attributes are schemaless
// so the merge never conflicts with the schema URL of resource.Default.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
}
