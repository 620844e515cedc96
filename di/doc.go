// Package di provides the service registry used by depin.
//
// Services are addressed by a ServiceKey: the Go type of the service plus an
// optional name. Registering the same key again replaces the previous
// factory. Instances are built lazily on first resolve and cached per the
// registration's Scope.
//
// # Registration
//
//	di.Register(container, func(r di.Resolver) (*MyService, error) {
//	    return NewMyService(di.MustResolve[*sql.DB](r)), nil
//	})
//
// # Resolution
//
//	svc := di.MustResolve[*MyService](container)
//
// MustResolve treats a missing registration as a programming error and
// panics with an *errors.AppError naming the missing key.
package di
