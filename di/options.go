package di

import (
	"github.com/kbukum/depin/logger"
	"github.com/kbukum/depin/observability"
)

// Option configures a container at construction.
type Option func(*UnifiedContainer)

// WithDefaultScope sets the scope given to registrations that do not call InScope.
func WithDefaultScope(s Scope) Option {
	return func(c *UnifiedContainer) { c.defaultScope = s }
}

// WithLogger sets the logger used for registration and resolution diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *UnifiedContainer) { c.log = l }
}

// WithMetrics records resolutions and factory invocations on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *UnifiedContainer) { c.metrics = m }
}
