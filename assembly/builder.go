package assembly

// Group returns its arguments as an ordered batch.
func Group(items ...Assembly) []Assembly {
	return items
}

// Builder accumulates assemblies in order.
//
//	batch := assembly.NewBuilder().
//	    Add(core).
//	    AddIf(cfg.Telemetry.Enabled, telemetry).
//	    Build()
type Builder struct {
	items []Assembly
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends assemblies. Nil entries are skipped.
func (b *Builder) Add(items ...Assembly) *Builder {
	for _, a := range items {
		if a != nil {
			b.items = append(b.items, a)
		}
	}
	return b
}

// AddIf appends assemblies only when cond is true.
func (b *Builder) AddIf(cond bool, items ...Assembly) *Builder {
	if cond {
		b.Add(items...)
	}
	return b
}

// Len returns the number of accumulated assemblies.
func (b *Builder) Len() int {
	return len(b.items)
}

// Build returns a copy of the accumulated batch.
func (b *Builder) Build() []Assembly {
	return append([]Assembly(nil), b.items...)
}
