package di

import (
	"reflect"
)

// ServiceKey identifies a registration: the service type plus an optional name.
// ServiceKey is comparable and is used directly as a map key.
type ServiceKey struct {
	Type reflect.Type
	Name string
}

// KeyOf returns the key for service type T. Interface types are keyed by the
// interface itself, not by the dynamic type of the registered value.
// Only the first name is used.
func KeyOf[T any](name ...string) ServiceKey {
	return ServiceKey{
		Type: reflect.TypeOf((*T)(nil)).Elem(),
		Name: firstName(name),
	}
}

// TypeName returns the printable type of the key.
func (k ServiceKey) TypeName() string {
	if k.Type == nil {
		return "<nil>"
	}
	return k.Type.String()
}

// String renders the key as "type" or "type#name".
func (k ServiceKey) String() string {
	if k.Name == "" {
		return k.TypeName()
	}
	return k.TypeName() + "#" + k.Name
}

// IsZero reports whether the key has no type.
func (k ServiceKey) IsZero() bool {
	return k.Type == nil
}

func firstName(name []string) string {
	if len(name) == 0 {
		return ""
	}
	return name[0]
}
