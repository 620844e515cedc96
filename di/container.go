package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/depin/errors"
	"github.com/kbukum/depin/logger"
	"github.com/kbukum/depin/observability"
)

// Factory builds a service instance. It receives a read-only view of the
// container so it can resolve its own dependencies.
type Factory func(r Resolver) (any, error)

// Resolver is the read-only capability of a container.
type Resolver interface {
	Resolve(key ServiceKey) (any, error)
	Has(key ServiceKey) bool
}

// Container defines the interface for the service registry.
type Container interface {
	Resolver

	// Register installs factory under key, replacing any previous
	// registration. It panics on a zero key or a nil factory.
	Register(key ServiceKey, factory Factory) *Registration
	// RegisterEager runs factory immediately and registers the result.
	RegisterEager(key ServiceKey, factory Factory) error
	// RegisterInstance registers a pre-built value.
	RegisterInstance(key ServiceKey, instance any)

	// Synchronize returns a read-only view that is safe for concurrent use.
	Synchronize() Resolver

	// Introspection
	Registrations() []RegistrationInfo
	ID() string

	Invalidate(key ServiceKey) error
	Close() error
}

// RegistrationInfo describes a registration for introspection.
type RegistrationInfo struct {
	Key         ServiceKey
	Mode        RegistrationMode
	Scope       Scope
	Initialized bool
}

// UnifiedContainer is the default Container implementation.
type UnifiedContainer struct {
	id            string
	registrations map[ServiceKey]*Registration
	mutex         sync.RWMutex
	view          Resolver

	defaultScope Scope
	log          *logger.Logger
	metrics      *observability.Metrics
}

// Registration is the handle returned by Register for further configuration.
type Registration struct {
	key     ServiceKey
	factory Factory
	mode    RegistrationMode
	metrics *observability.Metrics

	// build is held while the factory runs, so a single registration never
	// builds concurrently. It is taken before mutex and never while holding
	// the container lock.
	build sync.Mutex

	// mutex guards the fields below. It is only held for field access.
	mutex       sync.RWMutex
	scope       Scope
	instance    any
	initialized bool
}

// Resolution outcomes recorded on metrics.
const (
	statusOK      = "ok"
	statusMissing = "missing"
	statusFailed  = "failed"
)

// NewContainer creates an empty container.
func NewContainer(opts ...Option) Container {
	c := &UnifiedContainer{
		id:            uuid.NewString(),
		registrations: make(map[ServiceKey]*Registration),
		defaultScope:  ScopeContainer,
	}
	c.view = readOnly{c: c}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *UnifiedContainer) logger() *logger.Logger {
	if c.log != nil {
		return c.log
	}
	return logger.Get(logger.ComponentRegistry)
}

// ID returns the unique identifier of this container.
func (c *UnifiedContainer) ID() string {
	return c.id
}

// Register installs a lazily built factory under key.
func (c *UnifiedContainer) Register(key ServiceKey, factory Factory) *Registration {
	if key.IsZero() {
		panic(fmt.Errorf("di: register with zero service key"))
	}
	if factory == nil {
		panic(fmt.Errorf("di: nil factory for %s", key))
	}

	registration := &Registration{
		key:     key,
		factory: factory,
		mode:    Lazy,
		scope:   c.defaultScope,
		metrics: c.metrics,
	}
	c.put(registration)
	return registration
}

// RegisterEager builds the service immediately and registers the result.
// The factory keeps the registration so Invalidate can rebuild it lazily.
func (c *UnifiedContainer) RegisterEager(key ServiceKey, factory Factory) error {
	if key.IsZero() {
		panic(fmt.Errorf("di: register with zero service key"))
	}
	if factory == nil {
		panic(fmt.Errorf("di: nil factory for %s", key))
	}

	instance, err := factory(c.view)
	c.metrics.RecordFactoryInvocation(context.Background(), key.String(), ScopeContainer.String())
	if err != nil {
		return errors.FactoryFailed(key.String(), err)
	}

	c.put(&Registration{
		key:         key,
		factory:     factory,
		mode:        Eager,
		scope:       ScopeContainer,
		instance:    instance,
		initialized: true,
		metrics:     c.metrics,
	})
	return nil
}

// RegisterInstance registers a pre-created instance.
func (c *UnifiedContainer) RegisterInstance(key ServiceKey, instance any) {
	if key.IsZero() {
		panic(fmt.Errorf("di: register with zero service key"))
	}

	c.put(&Registration{
		key:         key,
		mode:        Instance,
		scope:       ScopeContainer,
		instance:    instance,
		initialized: true,
		metrics:     c.metrics,
	})
}

// put stores registration, replacing any previous one for the same key.
func (c *UnifiedContainer) put(registration *Registration) {
	c.mutex.Lock()
	_, replaced := c.registrations[registration.key]
	c.registrations[registration.key] = registration
	c.mutex.Unlock()

	fields := logger.Fields(
		logger.FieldServiceKey, registration.key.String(),
		logger.FieldScope, registration.Scope().String(),
		"mode", registration.mode.String(),
		logger.FieldContainerID, c.id,
	)
	if replaced {
		c.logger().Debug("service registration replaced", fields)
		return
	}
	c.logger().Debug("service registered", fields)
}

// Has reports whether key is registered.
func (c *UnifiedContainer) Has(key ServiceKey) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, ok := c.registrations[key]
	return ok
}

// Resolve gets a service instance.
func (c *UnifiedContainer) Resolve(key ServiceKey) (any, error) {
	start := time.Now()
	ctx := context.Background()

	c.mutex.RLock()
	registration, exists := c.registrations[key]
	c.mutex.RUnlock()

	if !exists {
		c.metrics.RecordResolve(ctx, key.String(), statusMissing, time.Since(start))
		return nil, errors.NotRegistered(key.TypeName(), key.Name)
	}

	instance, err := registration.resolve(c.view)
	if err != nil {
		c.metrics.RecordResolve(ctx, key.String(), statusFailed, time.Since(start))
		c.logger().Error("service factory failed", logger.Fields(
			logger.FieldServiceKey, key.String(),
			logger.FieldContainerID, c.id,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	c.metrics.RecordResolve(ctx, key.String(), statusOK, time.Since(start))
	return instance, nil
}

// Synchronize returns the read-only view handed to factories and injection sites.
func (c *UnifiedContainer) Synchronize() Resolver {
	return c.view
}

// Registrations returns info about all registrations, ordered by key.
func (c *UnifiedContainer) Registrations() []RegistrationInfo {
	registrations := c.snapshot()
	result := make([]RegistrationInfo, 0, len(registrations))
	for _, reg := range registrations {
		reg.mutex.RLock()
		result = append(result, RegistrationInfo{
			Key:         reg.key,
			Mode:        reg.mode,
			Scope:       reg.scope,
			Initialized: reg.initialized,
		})
		reg.mutex.RUnlock()
	}

	slices.SortFunc(result, func(a, b RegistrationInfo) int {
		return strings.Compare(a.Key.String(), b.Key.String())
	})
	return result
}

// snapshot copies the registration table so callers can inspect entries
// without holding the container lock.
func (c *UnifiedContainer) snapshot() []*Registration {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	registrations := make([]*Registration, 0, len(c.registrations))
	for _, reg := range c.registrations {
		registrations = append(registrations, reg)
	}
	return registrations
}

// Invalidate drops the cached instance of key so the next resolve rebuilds it.
// Instance registrations have nothing to rebuild from and are removed.
// A build already running for key may still cache its result.
func (c *UnifiedContainer) Invalidate(key ServiceKey) error {
	c.mutex.RLock()
	registration, exists := c.registrations[key]
	c.mutex.RUnlock()
	if !exists {
		return errors.NotRegistered(key.TypeName(), key.Name)
	}

	if registration.mode == Instance {
		c.mutex.Lock()
		if c.registrations[key] == registration {
			delete(c.registrations, key)
		}
		c.mutex.Unlock()
		return nil
	}

	registration.mutex.Lock()
	registration.instance = nil
	registration.initialized = false
	registration.mutex.Unlock()
	return nil
}

// Close closes every built instance that implements io.Closer, in key order.
func (c *UnifiedContainer) Close() error {
	registrations := c.snapshot()
	slices.SortFunc(registrations, func(a, b *Registration) int {
		return strings.Compare(a.key.String(), b.key.String())
	})

	var errs []error
	for _, registration := range registrations {
		registration.mutex.RLock()
		instance, initialized := registration.instance, registration.initialized
		registration.mutex.RUnlock()
		if !initialized {
			continue
		}

		if closer, ok := instance.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", registration.key, err))
			}
		}
	}
	return stderrors.Join(errs...)
}

// Key returns the service key of the registration.
func (r *Registration) Key() ServiceKey {
	return r.key
}

// Scope returns the current scope of the registration.
func (r *Registration) Scope() Scope {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.scope
}

// InScope sets the scope of the registration and returns it for chaining.
// Switching to ScopeTransient discards a cached instance.
func (r *Registration) InScope(scope Scope) *Registration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.scope = scope
	if scope == ScopeTransient {
		r.instance = nil
		r.initialized = false
	}
	return r
}

// cached returns the instance when the registration holds one.
func (r *Registration) cached() (any, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if r.initialized && r.scope == ScopeContainer {
		return r.instance, true
	}
	return nil, false
}

func (r *Registration) resolve(resolver Resolver) (any, error) {
	if instance, ok := r.cached(); ok {
		return instance, nil
	}

	r.build.Lock()
	defer r.build.Unlock()

	// Another caller may have built it while we waited.
	if instance, ok := r.cached(); ok {
		return instance, nil
	}

	r.mutex.RLock()
	scope := r.scope
	r.mutex.RUnlock()

	instance, err := r.factory(resolver)
	r.metrics.RecordFactoryInvocation(context.Background(), r.key.String(), scope.String())
	if err != nil {
		return nil, errors.FactoryFailed(r.key.String(), err)
	}

	if scope == ScopeContainer {
		r.mutex.Lock()
		if r.scope == ScopeContainer {
			r.instance = instance
			r.initialized = true
		}
		r.mutex.Unlock()
	}
	return instance, nil
}

// readOnly exposes only the Resolver half of a container.
type readOnly struct {
	c *UnifiedContainer
}

func (v readOnly) Resolve(key ServiceKey) (any, error) { return v.c.Resolve(key) }

func (v readOnly) Has(key ServiceKey) bool { return v.c.Has(key) }
