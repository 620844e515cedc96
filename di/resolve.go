package di

import (
	"fmt"

	"github.com/kbukum/depin/errors"
	"github.com/kbukum/depin/logger"
)

// Register installs a typed factory for T. The key is derived from T and the
// optional name.
//
// Example:
//
//	di.Register(c, func(r di.Resolver) (*UserService, error) {
//	    return NewUserService(di.MustResolve[*sql.DB](r)), nil
//	})
func Register[T any](c Container, factory func(r Resolver) (T, error), name ...string) *Registration {
	if factory == nil {
		panic(fmt.Errorf("di: nil factory for %s", KeyOf[T](name...)))
	}
	return c.Register(KeyOf[T](name...), func(r Resolver) (any, error) {
		return factory(r)
	})
}

// RegisterFunc installs a factory that cannot fail and needs no dependencies.
func RegisterFunc[T any](c Container, factory func() T, name ...string) *Registration {
	if factory == nil {
		panic(fmt.Errorf("di: nil factory for %s", KeyOf[T](name...)))
	}
	return c.Register(KeyOf[T](name...), func(Resolver) (any, error) {
		return factory(), nil
	})
}

// RegisterValue registers a pre-built value under T.
func RegisterValue[T any](c Container, value T, name ...string) {
	c.RegisterInstance(KeyOf[T](name...), value)
}

// Resolve resolves T with type safety, returns error on failure.
// Use this when you want to handle resolution errors gracefully.
//
// Example:
//
//	repo, err := di.Resolve[UserRepository](c)
//	if err != nil {
//	    return fmt.Errorf("failed to get user repository: %w", err)
//	}
func Resolve[T any](r Resolver, name ...string) (T, error) {
	var zero T
	key := KeyOf[T](name...)

	instance, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, errors.TypeMismatch(key.String(), fmt.Sprintf("%T", instance), key.TypeName())
	}
	return result, nil
}

// MustResolve resolves T and panics if it cannot. A missing registration is a
// wiring mistake, so the panic value is the *errors.AppError describing it.
//
// Example:
//
//	repo := di.MustResolve[UserRepository](c)
func MustResolve[T any](r Resolver, name ...string) T {
	result, err := Resolve[T](r, name...)
	if err != nil {
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.FactoryFailed(KeyOf[T](name...).String(), err)
		}
		logger.Get(logger.ComponentRegistry).Error("dependency resolution failed", logger.Fields(
			logger.FieldServiceKey, KeyOf[T](name...).String(),
			logger.FieldError, appErr.Error(),
		))
		panic(appErr)
	}
	return result
}

// TryResolve resolves T, returns zero value and false if it cannot.
// Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryResolve[MetricsClient](c, "metrics"); ok {
//	    metrics.RecordEvent(...)
//	}
func TryResolve[T any](r Resolver, name ...string) (T, bool) {
	result, err := Resolve[T](r, name...)
	if err != nil {
		return result, false
	}
	return result, true
}

// Has reports whether T is registered under the optional name.
func Has[T any](r Resolver, name ...string) bool {
	return r.Has(KeyOf[T](name...))
}
