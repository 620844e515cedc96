package di

// Scope controls how many instances a registration produces.
type Scope int

const (
	// ScopeContainer builds the instance on first resolve and reuses it for
	// the lifetime of the container.
	ScopeContainer Scope = iota

	// ScopeTransient builds a new instance on every resolve.
	ScopeTransient
)

// String returns the human-readable name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeContainer:
		return "container"
	case ScopeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// ParseScope converts a configuration value into a Scope.
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "container", "":
		return ScopeContainer, true
	case "transient":
		return ScopeTransient, true
	default:
		return ScopeContainer, false
	}
}

// RegistrationMode records how a registration was installed.
type RegistrationMode int

const (
	Lazy     RegistrationMode = iota // Built on first resolve
	Eager                            // Built during registration
	Instance                         // Pre-created value
)

// String returns the human-readable name of the mode.
func (m RegistrationMode) String() string {
	switch m {
	case Lazy:
		return "lazy"
	case Eager:
		return "eager"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}
