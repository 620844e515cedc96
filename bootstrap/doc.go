// Package bootstrap wires a depin runtime for a host process.
//
// A Runtime validates the configuration, initializes logging and optional
// telemetry, builds the registry and the assembler and publishes both in an
// env.Store so injected fields can find them.
//
// # Quick Start
//
//	cfg, err := bootstrap.Load("orders")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt, err := bootstrap.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt.Apply(storage.Assembly{}, orders.Assembly{})
//	if err := rt.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
