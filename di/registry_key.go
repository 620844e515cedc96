package di

import "github.com/kbukum/depin/env"

// RegistryKey locates the shared Container in an env.Store. When nothing has
// been stored, every read yields a fresh empty container that is not kept.
var RegistryKey = env.NewKey("di.registry", func(*env.Store) Container {
	return NewContainer()
})
