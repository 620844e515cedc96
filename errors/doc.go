// Package errors provides the error taxonomy used across depin.
// It implements a structured error type with machine-readable codes so callers
// can distinguish misconfiguration (an unregistered service) from a factory
// that failed at build time.
package errors
