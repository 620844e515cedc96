package inject

import (
	"sync"

	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/logger"
)

// Option configures a Field.
type Option func(*options)

type options struct {
	name  string
	store *env.Store
}

// Named resolves the registration with the given name.
func Named(name string) Option {
	return func(o *options) { o.name = name }
}

// FromStore reads the registry from s instead of env.Default().
func FromStore(s *env.Store) Option {
	return func(o *options) { o.store = s }
}

// Field is a service of type T resolved on first use.
// Field is safe for concurrent use and must not be copied after first use.
type Field[T any] struct {
	name  string
	store *env.Store

	mu       sync.RWMutex
	resolved bool
	value    T
}

// New creates an unresolved Field.
func New[T any](opts ...Option) *Field[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Field[T]{name: o.name, store: o.store}
}

// Get returns the service, resolving it on the first call. A missing
// registration panics with the *errors.AppError from di.MustResolve and
// leaves the field unresolved.
func (f *Field[T]) Get() T {
	f.mu.RLock()
	if f.resolved {
		v := f.value
		f.mu.RUnlock()
		return v
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if f.resolved {
		return f.value
	}

	f.value = resolve[T](f.storeOrDefault(), f.name)
	f.resolved = true

	logger.Get(logger.ComponentInject).Debug("injected field resolved", logger.Fields(
		logger.FieldServiceKey, di.KeyOf[T](f.name).String(),
	))
	return f.value
}

// Resolved reports whether Get has completed successfully.
func (f *Field[T]) Resolved() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.resolved
}

func (f *Field[T]) storeOrDefault() *env.Store {
	if f.store != nil {
		return f.store
	}
	return env.Default()
}

// Value resolves T from the default store without memoizing.
func Value[T any](name ...string) T {
	var n string
	if len(name) > 0 {
		n = name[0]
	}
	return resolve[T](env.Default(), n)
}

func resolve[T any](s *env.Store, name string) T {
	registry := env.Get(s, di.RegistryKey)
	return di.MustResolve[T](registry.Synchronize(), name)
}
