package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Hook is a shutdown callback.
type Hook func(ctx context.Context) error

// OnStop registers hooks that run during Shutdown while the container is
// still open. Hooks run in reverse registration order.
func (r *Runtime) OnStop(hooks ...Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onStop = append(r.onStop, hooks...)
}

// runHooks runs every hook, last registered first, and joins the failures.
// Hook indexes in the errors refer to registration order.
func runHooks(ctx context.Context, hooks []Hook) error {
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop hook %d: %w", i, err))
		}
	}
	return stderrors.Join(errs...)
}
