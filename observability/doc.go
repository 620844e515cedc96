// Package observability exports registry and assembler telemetry through
// OpenTelemetry.
//
// Init starts OTLP/HTTP meter and tracer providers and installs them
// globally:
//
//	p, err := observability.Init(ctx, observability.DefaultConfig("orders"))
//	if err != nil {
//	    return err
//	}
//	defer p.Shutdown(ctx)
//
//	container := di.NewContainer(di.WithMetrics(p.Metrics))
//
// Metrics recorded through a nil *Metrics are dropped, so components can
// take metrics as an optional dependency.
package observability
