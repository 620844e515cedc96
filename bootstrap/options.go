package bootstrap

import (
	"time"

	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/logger"
)

// Option customizes a Runtime before its components are built.
type Option func(*Runtime)

// WithLogger replaces the logger built from the Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runtime) { r.Logger = l }
}

// WithGracefulTimeout bounds the shutdown performed by Run.
func WithGracefulTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		if d > 0 {
			r.gracefulTimeout = d
		}
	}
}

// WithContainer uses c as the registry. The registry scope from config is
// ignored.
func WithContainer(c di.Container) Option {
	return func(r *Runtime) { r.container = c }
}

// WithStore publishes the registry and assembler in s instead of env.Default().
func WithStore(s *env.Store) Option {
	return func(r *Runtime) { r.store = s }
}
