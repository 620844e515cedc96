// Package assembly composes registration units into a di.Container.
//
// An Assembly registers services; an Assembler applies a batch of them to
// its container. Every Assembly in a batch is registered before any
// LoadAware hook runs, so hooks observe the whole batch:
//
//	a := assembly.New(container)
//	a.Apply(
//	    storage.Assembly{},
//	    assembly.Func(func(c di.Container) {
//	        di.Register(c, newUserService)
//	    }),
//	)
//
// Batches can be built conditionally with a Builder and nested with
// Composite.
package assembly
