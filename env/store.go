package env

import (
	"sync"

	"github.com/kbukum/depin/logger"
)

// Store is a concurrency-safe map from key descriptors to values.
// The zero value is not usable; create stores with NewStore.
type Store struct {
	mu     sync.Mutex
	values map[any]any
	log    *logger.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *logger.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{values: make(map[any]any)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// logger returns the WithLogger override, or the current env component
// logger so stores created before logger.Init pick up the configured one.
func (s *Store) logger() *logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.Get(logger.ComponentEnv)
}

// Get returns the value stored under key, or the key's default when unset.
// The default is not written back.
func Get[V any](s *Store, key *Key[V]) V {
	s.mu.Lock()
	v, ok := s.values[key]
	s.mu.Unlock()

	if ok {
		// A nil interface value was stored; the assertion yields the zero V.
		val, _ := v.(V)
		return val
	}

	// The supplier runs unlocked so it may read other keys of s.
	s.logger().Debug("environment key unset, using default", logger.Fields(logger.FieldStoreKey, key.name))
	return key.fallback(s)
}

// Set stores value under key, replacing any previous value.
func Set[V any](s *Store, key *Key[V], value V) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.logger().Debug("environment key set", logger.Fields(logger.FieldStoreKey, key.name))
}

// Has reports whether a value has been set for key.
func Has[V any](s *Store, key *Key[V]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys that have been set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Reset removes every value from the store. Intended for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.values = make(map[any]any)
	s.mu.Unlock()
}
