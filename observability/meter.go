package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// InitMeter starts a periodic OTLP/HTTP metric exporter and installs its
// provider globally. The caller shuts the provider down.
func InitMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
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
	return mp, nil
}

// Metrics holds the instruments recorded by the registry and the assembler.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolveTotal       metric.Int64Counter
	resolveDuration    metric.Float64Histogram
	factoryInvocations metric.Int64Counter
	assembliesApplied  metric.Int64Counter
}

// Instrument names.
const (
	MetricResolveTotal       = "di.resolve.total"
	MetricResolveDuration    = "di.resolve.duration"
	MetricFactoryInvocations = "di.factory.invocations"
	MetricAssembliesApplied  = "assembly.applied"
)

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.resolveTotal, err = meter.Int64Counter(MetricResolveTotal,
		metric.WithDescription("Service resolutions by key and outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating %s: %w", MetricResolveTotal, err)
	}
	if m.resolveDuration, err = meter.Float64Histogram(MetricResolveDuration,
		metric.WithDescription("Duration of service resolutions"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating %s: %w", MetricResolveDuration, err)
	}
	if m.factoryInvocations, err = meter.Int64Counter(MetricFactoryInvocations,
		metric.WithDescription("Factory runs by key and scope"),
	); err != nil {
		return nil, fmt.Errorf("creating %s: %w", MetricFactoryInvocations, err)
	}
	if m.assembliesApplied, err = meter.Int64Counter(MetricAssembliesApplied,
		metric.WithDescription("Assemblies applied to a container"),
	); err != nil {
		return nil, fmt.Errorf("creating %s: %w", MetricAssembliesApplied, err)
	}
	return m, nil
}

// NoopMetrics returns instruments backed by the no-op meter provider.
func NoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

// RecordResolve records one resolution of key with its outcome.
func (m *Metrics) RecordResolve(ctx context.Context, key, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrServiceKey, key),
		attribute.String(AttrStatus, status),
	))
	m.resolveDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrServiceKey, key),
	))
}

// RecordFactoryInvocation records that the factory for key ran.
func (m *Metrics) RecordFactoryInvocation(ctx context.Context, key, scope string) {
	if m == nil {
		return
	}
	m.factoryInvocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrServiceKey, key),
		attribute.String(AttrScope, scope),
	))
}

// RecordAssemblies records a batch of n applied assemblies.
func (m *Metrics) RecordAssemblies(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.assembliesApplied.Add(ctx, int64(n))
}
