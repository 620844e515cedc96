package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "ParentBased"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); !strings.HasPrefix(got, tc.want) {
			t.Errorf("sampler(%v) = %q, want prefix %q", tc.rate, got, tc.want)
		}
	}
}

func TestNilProvidersShutdown(t *testing.T) {
	var p *Providers
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordResolve(ctx, "*app.DB", "ok", time.Millisecond)
	metrics.RecordFactoryInvocation(ctx, "*app.DB", "container")
	metrics.RecordAssemblies(ctx, 3)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordResolve(ctx, "k", "ok", time.Millisecond)
	m.RecordFactoryInvocation(ctx, "k", "transient")
	m.RecordAssemblies(ctx, 1)
}

func TestNoopMetrics(t *testing.T) {
	if NoopMetrics() == nil {
		t.Fatal("expected non-nil noop metrics")
	}
}

func TestStartSpanAndSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartSpan(context.Background(), SpanAssemblyApply)
	SetSpanError(span, errors.New("boom"))
	SetSpanError(span, nil)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanAssemblyApply {
		t.Errorf("expected span %q, got %q", SpanAssemblyApply, spans[0].Name)
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(spans[0].Events))
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(Config{ServiceName: "svc", ServiceVersion: "1.0.0", Environment: "test"})
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	if res == nil {
		t.Fatal("expected non-nil resource")
	}
}
