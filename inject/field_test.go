package inject

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/depin/di"
	"github.com/kbukum/depin/env"
	"github.com/kbukum/depin/errors"
	"github.com/kbukum/depin/logger"
)

type clock struct{ id int }

type namer interface{ Name() string }

type fixedName string

func (n fixedName) Name() string { return string(n) }

// newStore returns a store holding a fresh container.
func newStore(t *testing.T) (*env.Store, di.Container) {
	t.Helper()
	s := env.NewStore(env.WithLogger(logger.Nop()))
	c := di.NewContainer(di.WithLogger(logger.Nop()))
	env.Set(s, di.RegistryKey, c)
	return s, c
}

// TestField_ResolvesOnFirstGet verifies the registry is read at first Get, not at construction.
func TestField_ResolvesOnFirstGet(t *testing.T) {
	t.Parallel()

	s, c := newStore(t)
	f := New[*clock](FromStore(s))
	assert.False(t, f.Resolved())

	di.RegisterValue(c, &clock{id: 1})

	got := f.Get()
	require.NotNil(t, got)
	assert.Equal(t, 1, got.id)
	assert.True(t, f.Resolved())
}

// TestField_Memoizes verifies a resolved field ignores later registrations.
func TestField_Memoizes(t *testing.T) {
	t.Parallel()

	s, c := newStore(t)
	di.RegisterValue(c, &clock{id: 1})

	f := New[*clock](FromStore(s))
	first := f.Get()

	di.RegisterValue(c, &clock{id: 2})
	assert.Same(t, first, f.Get())
	assert.Equal(t, 2, di.MustResolve[*clock](c).id)
}

// TestField_Named verifies Named selects the named registration.
func TestField_Named(t *testing.T) {
	t.Parallel()

	s, c := newStore(t)
	di.RegisterValue[namer](c, fixedName("primary"), "primary")
	di.RegisterValue[namer](c, fixedName("replica"), "replica")

	f := New[namer](FromStore(s), Named("replica"))
	assert.Equal(t, "replica", f.Get().Name())
}

// TestField_ConcurrentFirstGet verifies concurrent first reads run the factory once.
func TestField_ConcurrentFirstGet(t *testing.T) {
	t.Parallel()

	s, c := newStore(t)
	var calls atomic.Int32
	di.RegisterFunc(c, func() *clock {
		calls.Add(1)
		return &clock{}
	}).InScope(di.ScopeTransient)

	f := New[*clock](FromStore(s))

	const n = 64
	results := make([]*clock, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Get()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

// TestField_MissingPanicsAndStaysUnresolved verifies a failed Get can be retried after registration.
func TestField_MissingPanicsAndStaysUnresolved(t *testing.T) {
	t.Parallel()

	s, c := newStore(t)
	f := New[*clock](FromStore(s), Named("wall"))

	func() {
		defer func() {
			err, ok := recover().(error)
			require.True(t, ok)
			assert.True(t, errors.IsCode(err, errors.ErrCodeServiceNotRegistered))
		}()
		f.Get()
	}()
	assert.False(t, f.Resolved())

	di.RegisterValue(c, &clock{id: 9}, "wall")
	assert.Equal(t, 9, f.Get().id)
}

// TestField_RegistryReplacedBeforeFirstGet verifies the field uses the registry current at first Get.
func TestField_RegistryReplacedBeforeFirstGet(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	f := New[*clock](FromStore(s))

	replacement := di.NewContainer(di.WithLogger(logger.Nop()))
	di.RegisterValue(replacement, &clock{id: 5})
	env.Set(s, di.RegistryKey, replacement)

	assert.Equal(t, 5, f.Get().id)
}

// TestValue_UsesDefaultStore verifies the one-shot helper resolves from the process store.
func TestValue_UsesDefaultStore(t *testing.T) {
	s, c := newStore(t)
	env.Init(s)
	defer env.Reset()

	di.RegisterValue(c, &clock{id: 3}, "tick")
	assert.Equal(t, 3, Value[*clock]("tick").id)

	f := New[*clock](Named("tick"))
	assert.Equal(t, 3, f.Get().id)

	assert.Panics(t, func() { Value[*clock]() })
}
