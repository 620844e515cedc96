// Package env provides the keyed environment store that holds process-wide
// singletons such as the service registry and the assembler.
//
// A Key is declared once, usually as a package-level variable, together with
// a supplier for its default value:
//
//	var RegistryKey = env.NewKey("di.registry", func(*env.Store) di.Container {
//	    return di.NewContainer()
//	})
//
// Reads never fail. When no value has been set, Get invokes the key's
// supplier and returns the result without storing it, so every unset read
// produces a fresh default. Hosts that need a stable singleton Set it once at
// startup (see package bootstrap).
package env
