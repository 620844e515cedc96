package env

// Key describes a typed entry in a Store. Two keys are the same entry only if
// they are the same *Key value.
type Key[V any] struct {
	name         string
	defaultValue func(s *Store) V
}

// NewKey creates a key descriptor. defaultValue is called with the store being
// read every time the key is read while unset; it may read other keys of that
// store. A nil defaultValue yields the zero value of V.
func NewKey[V any](name string, defaultValue func(s *Store) V) *Key[V] {
	return &Key[V]{name: name, defaultValue: defaultValue}
}

// Name returns the descriptive name given at construction.
func (k *Key[V]) Name() string { return k.name }

// String implements fmt.Stringer.
func (k *Key[V]) String() string { return k.name }

func (k *Key[V]) fallback(s *Store) V {
	if k.defaultValue == nil {
		var zero V
		return zero
	}
	return k.defaultValue(s)
}
