package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
)

// defaultHookTimeout bounds each side-effect hook. Hooks call external
// services and must not hang forever once the transition has committed.
const defaultHookTimeout = 30 * time.Second

// TransitionSnapshot is the immutable record of a committed transition,
// handed to side-effect hooks after the transaction completes.
type TransitionSnapshot struct {
	OrderID  kernel.UUID
	Order    *order.Order
	From     order.Status
	To       order.Status
	Reason   string
	ActorID  string
	Forced   bool
	Warnings []string

	// Shipping details from the request, populated for SHIPPED transitions
	// when the caller supplied them.
	TrackingNumber string
	Carrier        string
	Service        string

	OccurredAt time.Time
}

// TransitionHook runs a side effect after a status transition commits.
// Hooks are best-effort: a hook error is logged and recorded in the event
// log where the hook chooses to, but never reverses the transition.
type TransitionHook interface {
	// Name identifies the hook in logs.
	Name() string

	// AfterTransition performs the side effect. The context is detached
	// from the originating request and carries the hook timeout.
	AfterTransition(ctx context.Context, snap TransitionSnapshot) error
}

// HookRunner fans a committed transition out to its side-effect hooks.
// Each hook runs in its own goroutine with a recover boundary, so a
// panicking or slow hook cannot take down the others or the caller.
type HookRunner struct {
	hooks   []TransitionHook
	timeout time.Duration
	logger  *slog.Logger
}

// NewHookRunner creates a runner over the given hooks.
func NewHookRunner(logger *slog.Logger, hooks ...TransitionHook) *HookRunner {
	return &HookRunner{
		hooks:   hooks,
		timeout: defaultHookTimeout,
		logger:  logger.With("component", "transition-hooks"),
	}
}

// Run invokes every hook concurrently and waits for all of them to finish.
// The transition is already committed when Run is called; hook failures are
// logged and swallowed. Hooks receive a context detached from the request
// so an early client disconnect does not cancel side effects mid-flight.
func (r *HookRunner) Run(ctx context.Context, snap TransitionSnapshot) {
	var wg sync.WaitGroup

	for _, hook := range r.hooks {
		wg.Add(1)

		go func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("side-effect hook panicked",
						"hook", hook.Name(),
						"orderId", snap.OrderID.String(),
						"panic", rec,
					)
				}
			}()

			hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
			defer cancel()

			if err := hook.AfterTransition(hookCtx, snap); err != nil {
				r.logger.Warn("side-effect hook failed",
					"hook", hook.Name(),
					"orderId", snap.OrderID.String(),
					"from", snap.From.String(),
					"to", snap.To.String(),
					"error", err,
				)
			}
		}()
	}

	wg.Wait()
}
