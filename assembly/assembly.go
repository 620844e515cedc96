package assembly

import (
	"fmt"

	"github.com/kbukum/depin/di"
)

// Assembly is a unit of registrations.
type Assembly interface {
	Assemble(c di.Container)
}

// LoadAware is implemented by assemblies that need a hook after their batch
// has been registered.
type LoadAware interface {
	Loaded(r di.Resolver)
}

// Named is implemented by assemblies that report a name for logs and spans.
type Named interface {
	Name() string
}

// Func adapts a plain function to Assembly.
type Func func(c di.Container)

// Assemble calls f(c).
func (f Func) Assemble(c di.Container) { f(c) }

// NameOf returns the name an assembly reports, or its dynamic type.
func NameOf(a Assembly) string {
	if n, ok := a.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

// Composite is a named group of assemblies that is itself an Assembly, so
// groups can nest. Members run in order for both Assemble and Loaded.
type Composite struct {
	name    string
	members []Assembly
}

// NewComposite creates a Composite from members.
func NewComposite(name string, members ...Assembly) *Composite {
	return &Composite{name: name, members: members}
}

// Name returns the composite name.
func (c *Composite) Name() string { return c.name }

// Members returns the member assemblies in order.
func (c *Composite) Members() []Assembly {
	return append([]Assembly(nil), c.members...)
}

// Assemble assembles every member.
func (c *Composite) Assemble(container di.Container) {
	for _, m := range c.members {
		m.Assemble(container)
	}
}

// Loaded forwards to every LoadAware member.
func (c *Composite) Loaded(r di.Resolver) {
	for _, m := range c.members {
		if la, ok := m.(LoadAware); ok {
			la.Loaded(r)
		}
	}
}
