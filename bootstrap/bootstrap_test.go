package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/depin/assembly"
	"github.com/kbukum/depin/config"
	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/errors"
	"github.com/kbukum/depin/inject"
	"github.com/kbukum/depin/logger"
)

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

type clock interface{ Now() time.Time }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func newTestConfig(name string) *config.Config {
	return &config.Config{Name: name, Version: "1.0.0", Environment: config.EnvDevelopment}
}

func newTestRuntime(t *testing.T, cfg *config.Config, opts ...Option) (*Runtime, *env.Store) {
	t.Helper()
	store := env.NewStore(env.WithLogger(logger.Nop()))
	opts = append([]Option{WithStore(store), WithLogger(logger.Nop())}, opts...)
	r, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, store
}

func TestNewRuntime(t *testing.T) {
	r, store := newTestRuntime(t, newTestConfig("test-svc"))

	if r.Name != "test-svc" || r.Version != "1.0.0" {
		t.Errorf("unexpected identity %q/%q", r.Name, r.Version)
	}
	if r.Store() != store {
		t.Error("expected runtime to use the given store")
	}
	if env.Get(store, di.RegistryKey) != r.Container() {
		t.Error("expected registry to be published in the store")
	}
	if env.Get(store, assembly.AssemblerKey) != r.Assembler() {
		t.Error("expected assembler to be published in the store")
	}
	if r.Assembler().Container() != r.Container() {
		t.Error("expected assembler to be bound to the runtime container")
	}
	if got := di.MustResolve[*config.Config](r.Container()); got != r.Cfg {
		t.Error("expected config to be registered")
	}
}

func TestNewRuntimeNilConfig(t *testing.T) {
	_, err := New(nil, WithLogger(logger.Nop()))
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestNewRuntimeInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"missing name", &config.Config{}},
		{"bad environment", &config.Config{Name: "svc", Environment: "qa"}},
		{"bad scope", &config.Config{Name: "svc", Registry: config.RegistryConfig{DefaultScope: "request"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, WithStore(env.NewStore()), WithLogger(logger.Nop()))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestRuntimeDefaultScopeFromConfig(t *testing.T) {
	cfg := newTestConfig("svc")
	cfg.Registry.DefaultScope = "transient"
	r, _ := newTestRuntime(t, cfg)

	reg := di.RegisterFunc(r.Container(), func() *closer { return &closer{} })
	if reg.Scope() != di.ScopeTransient {
		t.Errorf("expected transient scope, got %s", reg.Scope())
	}
	if di.MustResolve[*closer](r.Container()) == di.MustResolve[*closer](r.Container()) {
		t.Error("expected distinct instances")
	}
}

func TestRuntimeWithContainer(t *testing.T) {
	c := di.NewContainer(di.WithLogger(logger.Nop()))
	r, _ := newTestRuntime(t, newTestConfig("svc"), WithContainer(c))
	if r.Container() != c {
		t.Error("expected custom container")
	}
}

func TestRuntimeApplyAndInject(t *testing.T) {
	r, store := newTestRuntime(t, newTestConfig("svc"))
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	field := inject.New[clock](inject.FromStore(store))

	r.Apply(assembly.Func(func(c di.Container) {
		di.Register(c, func(di.Resolver) (clock, error) {
			return fixedClock{t: now}, nil
		})
	}))

	if !r.Assembler().Loaded() {
		t.Error("expected assembler to be loaded")
	}
	if got := field.Get().Now(); !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}
}

func TestShutdownClosesContainerAndRunsHooks(t *testing.T) {
	r, _ := newTestRuntime(t, newTestConfig("svc"))
	c := &closer{}
	di.RegisterValue(r.Container(), c)

	var order []string
	r.OnStop(func(context.Context) error {
		order = append(order, "hook")
		if c.closed {
			t.Error("hook should run before the container is closed")
		}
		return nil
	})

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !c.closed {
		t.Error("expected closer to be closed")
	}
	if len(order) != 1 {
		t.Errorf("expected hook to run once, got %v", order)
	}

	// Second call is a no-op.
	if err := r.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
	if len(order) != 1 {
		t.Errorf("expected hook not to rerun, got %v", order)
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	r, _ := newTestRuntime(t, newTestConfig("svc"))
	di.RegisterValue(r.Container(), &closer{err: fmt.Errorf("close failed")})
	r.OnStop(func(context.Context) error { return fmt.Errorf("hook failed") })

	err := r.Shutdown(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "close failed") || !strings.Contains(err.Error(), "hook failed") {
		t.Errorf("expected both errors, got %q", err.Error())
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	r, _ := newTestRuntime(t, newTestConfig("svc"), WithGracefulTimeout(time.Second))
	c := &closer{}
	di.RegisterValue(r.Container(), c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !c.closed {
		t.Error("expected Run to shut down the container")
	}
}

func TestRunHooks(t *testing.T) {
	var order []int
	hooks := []Hook{
		func(context.Context) error { order = append(order, 0); return nil },
		func(context.Context) error { order = append(order, 1); return fmt.Errorf("boom") },
		func(context.Context) error { order = append(order, 2); return nil },
	}
	err := runHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "stop hook 1: boom") {
		t.Errorf("expected hook 1 error, got %v", err)
	}
	want := []int{2, 1, 0}
	if !slices.Equal(order, want) {
		t.Errorf("expected hooks to run in reverse order %v, got %v", want, order)
	}
}

func TestRunHooksEmpty(t *testing.T) {
	if err := runHooks(context.Background(), nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestSummaryRender(t *testing.T) {
	c := di.NewContainer(di.WithLogger(logger.Nop()))
	di.RegisterValue(c, "dsn", "db")
	di.RegisterFunc(c, func() int { return 1 }).InScope(di.ScopeTransient)

	s := NewSummary("svc", "")
	s.Collect(c)
	if len(s.Registrations()) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(s.Registrations()))
	}

	var buf bytes.Buffer
	s.Render(&buf)
	out := buf.String()
	for _, want := range []string{"svc dev", "Services (2)", "string#db", "instance", "transient", "1/2 built"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSummaryRenderEmpty(t *testing.T) {
	s := NewSummary("svc", "1.0.0")
	s.Collect(di.NewContainer(di.WithLogger(logger.Nop())))

	var buf bytes.Buffer
	s.Render(&buf)
	if !strings.Contains(buf.String(), "No services registered") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("name: orders\nregistry:\n  default_scope: transient\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("orders", config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, "none.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Registry.DefaultScope != "transient" {
		t.Errorf("expected transient, got %q", cfg.Registry.DefaultScope)
	}
}

func TestNewRuntimeVersionFromBuild(t *testing.T) {
	cfg := newTestConfig("svc")
	cfg.Version = ""
	r, _ := newTestRuntime(t, cfg)
	if r.Version == "" {
		t.Error("expected version from build info")
	}
}
