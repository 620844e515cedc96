package logger

import "sync"

// Component names used by the depin packages.
const (
	ComponentEnv       = "env"
	ComponentRegistry  = "di"
	ComponentAssembly  = "assembly"
	ComponentInject    = "inject"
	ComponentConfig    = "config"
	ComponentBootstrap = "bootstrap"
)

// Components lists every component name used by the depin packages.
var Components = []string{
	ComponentEnv, ComponentRegistry, ComponentAssembly,
	ComponentInject, ComponentConfig, ComponentBootstrap,
}

// named maps component names to *Logger overrides.
var named sync.Map

// Register installs l as the logger for component, overriding the global
// fallback. A nil l removes the override.
func Register(component string, l *Logger) {
	if l == nil {
		named.Delete(component)
		return
	}
	named.Store(component, l)
}

// Get returns the logger registered for component, or the current global
// logger tagged with the component name.
func Get(component string) *Logger {
	if l, ok := named.Load(component); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(component)
}

// RegisterDefaults registers a component logger derived from the global
// logger for each name, or for every entry of Components when none is given.
// Call it after Init.
func RegisterDefaults(components ...string) {
	if len(components) == 0 {
		components = Components
	}
	base := GetGlobalLogger()
	for _, c := range components {
		Register(c, base.WithComponent(c))
	}
}
