// Package logger wraps zerolog for the depin packages.
//
// Init configures the global logger from a Config. Each package logs
// through a component logger taken from Get, which falls back to the global
// logger tagged with the component name until a host overrides it with
// Register:
//
//	log := logger.Get(logger.ComponentRegistry)
//	log.Debug("service registered", logger.Fields(logger.FieldServiceKey, key.String()))
//
// Configuration:
//
//	logging:
//	  level: info      # debug|info|warn|error
//	  format: json     # json|console|pretty
//	  output: stdout   # stdout|stderr
package logger
