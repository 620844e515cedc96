package env

import "sync"

// Process-wide store and its guard.
var (
	defaultMu    sync.RWMutex
	defaultStore *Store
)

// Default returns the process-wide store, creating it on first call.
func Default() *Store {
	defaultMu.RLock()
	s := defaultStore
	defaultMu.RUnlock()
	if s != nil {
		return s
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		defaultStore = NewStore()
	}
	return defaultStore
}

// Init replaces the process-wide store with s. Values held by the previous
// store are not carried over.
func Init(s *Store) {
	defaultMu.Lock()
	defaultStore = s
	defaultMu.Unlock()
}

// Reset installs a fresh empty process-wide store and returns it.
func Reset() *Store {
	s := NewStore()
	Init(s)
	return s
}
