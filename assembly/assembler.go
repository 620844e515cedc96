package assembly

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/logger"
	"github.com/kbukum/depin/observability"
)

// AssemblerKey locates the shared Assembler in an env.Store. When nothing has
// been stored, a read yields a new Assembler bound to the store's current
// registry.
var AssemblerKey = env.NewKey("assembly.assembler", func(s *env.Store) *Assembler {
	return New(env.Get(s, di.RegistryKey))
})

// eventAssembled is the span event added after each assembly registers.
const eventAssembled = "assembly.assembled"

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// WithMetrics records applied batches on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assembler) { a.metrics = m }
}

// Assembler applies assemblies to a single container.
// Apply must not be called concurrently; resolution during Apply is safe.
type Assembler struct {
	container di.Container
	loaded    atomic.Bool
	log       *logger.Logger
	metrics   *observability.Metrics
}

// New creates an Assembler bound to c.
func New(c di.Container, opts ...Option) *Assembler {
	a := &Assembler{container: c}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assembler) logger() *logger.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.Get(logger.ComponentAssembly)
}

// NewWith creates an Assembler bound to c and applies assemblies to it.
func NewWith(c di.Container, assemblies ...Assembly) *Assembler {
	a := New(c)
	a.Apply(assemblies...)
	return a
}

// Container returns the container the assembler registers into.
func (a *Assembler) Container() di.Container {
	return a.container
}

// Resolver returns the synchronized read-only view of the container.
func (a *Assembler) Resolver() di.Resolver {
	return a.container.Synchronize()
}

// Loaded reports whether at least one batch has completed.
func (a *Assembler) Loaded() bool {
	return a.loaded.Load()
}

// Apply registers every assembly in order, then runs the LoadAware hooks of
// the batch in order. A panicking assembly propagates its panic.
func (a *Assembler) Apply(assemblies ...Assembly) {
	a.apply(context.Background(), assemblies)
}

// ApplyFunc applies the batch returned by build.
func (a *Assembler) ApplyFunc(build func() []Assembly) {
	a.apply(context.Background(), build())
}

// ApplyContext is Apply traced as an assembly.apply span. A panicking
// assembly marks the span failed before the panic propagates.
func (a *Assembler) ApplyContext(ctx context.Context, assemblies ...Assembly) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAssemblyApply,
		trace.WithAttributes(
			attribute.String(observability.AttrContainerID, a.container.ID()),
			attribute.Int(observability.AttrAssemblies, len(assemblies)),
		),
	)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			observability.SetSpanError(span, panicError(r))
			panic(r)
		}
	}()

	a.apply(ctx, assemblies)
}

// panicError converts a recovered value to an error for span recording.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("assembly panicked: %v", r)
}

func (a *Assembler) apply(ctx context.Context, assemblies []Assembly) {
	start := time.Now()
	span := trace.SpanFromContext(ctx)

	for _, asm := range assemblies {
		a.logger().Debug("applying assembly", logger.Fields(
			logger.FieldAssembly, NameOf(asm),
			logger.FieldContainerID, a.container.ID(),
		))
		asm.Assemble(a.container)
		span.AddEvent(eventAssembled, trace.WithAttributes(
			attribute.String(observability.AttrAssembly, NameOf(asm)),
		))
	}

	resolver := a.container.Synchronize()
	for _, asm := range assemblies {
		if la, ok := asm.(LoadAware); ok {
			la.Loaded(resolver)
		}
	}

	a.loaded.Store(true)
	a.metrics.RecordAssemblies(ctx, len(assemblies))

	fields := logger.DurationFields("apply", time.Since(start))
	fields[logger.FieldCount] = len(assemblies)
	fields[logger.FieldContainerID] = a.container.ID()
	a.logger().Info("assemblies applied", fields)
}
