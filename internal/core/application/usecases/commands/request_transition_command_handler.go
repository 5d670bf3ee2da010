package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// TransitionResult reports the outcome of a committed transition request.
// NoOp is true when the order was already in the target status; in that
// case From equals To and no side effects ran.
type TransitionResult struct {
	Order    *order.Order
	From     order.Status
	To       order.Status
	NoOp     bool
	Warnings []string
}

// RequestTransitionCommandHandler is the single write path for order status.
// It locks the order row, re-validates the transition against the freshly
// read status, persists the new status and its audit event in one
// transaction, then fans out to side-effect hooks.
//
// Example:
//
//	handler := NewRequestTransitionCommandHandler(uowFactory, eventLog, hooks, logger)
//	cmd, _ := NewRequestTransitionCommand(orderID, order.Cancelled, "customer request", "admin:7", true)
//
//	result, err := handler.Handle(ctx, cmd)
//	var confirm *errs.ConfirmationRequiredError
//	if errors.As(err, &confirm) {
//	    // surface the warning and retry with force
//	}
type RequestTransitionCommandHandler struct {
	uowFactory TransitionUoWFactory
	events     ports.EventAppender
	hooks      *HookRunner
	logger     *slog.Logger
}

// NewRequestTransitionCommandHandler creates the transition handler.
// The events appender runs outside the transition transaction and records
// rejected attempts; hooks may be nil when no side effects are wired.
func NewRequestTransitionCommandHandler(
	uowFactory TransitionUoWFactory,
	events ports.EventAppender,
	hooks *HookRunner,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		hooks:      hooks,
		logger:     logger.With("component", "transition-handler"),
	}
}

// Handle processes one transition request.
//
// The order row is read with a row-level lock, so concurrent requests for
// the same order serialize here and each request plans against the status
// the previous one committed. A request for the status the order already
// holds commits a no-op marker event and succeeds without side effects.
// Rejected attempts are recorded as TRANSITION_REJECTED outside the aborted
// transaction and returned as typed errors.
func (h *RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	plan, err := aggregate.PlanTransition(cmd.Target(), cmd.Force())
	if err != nil {
		h.recordRejection(ctx, aggregate, cmd, err)
		return TransitionResult{}, err
	}

	if plan.To() == order.Shipped && !plan.NoOp() {
		if err := h.checkShippingDetails(ctx, uow, cmd); err != nil {
			h.recordRejection(ctx, aggregate, cmd, err)
			return TransitionResult{}, err
		}
	}

	now := time.Now().UTC()

	if !plan.NoOp() {
		if err := aggregate.ApplyTransition(plan, now); err != nil {
			return TransitionResult{}, err
		}

		if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return TransitionResult{}, err
		}
	}

	event, err := statusChangedEvent(aggregate.ID(), plan, cmd, now)
	if err != nil {
		return TransitionResult{}, err
	}

	if err := uow.OrderEventRepository().Append(ctx, event); err != nil {
		return TransitionResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{
		Order:    aggregate,
		From:     plan.From(),
		To:       plan.To(),
		NoOp:     plan.NoOp(),
		Warnings: plan.Warnings(),
	}

	if !plan.NoOp() && h.hooks != nil {
		h.hooks.Run(ctx, TransitionSnapshot{
			OrderID:        aggregate.ID(),
			Order:          aggregate,
			From:           plan.From(),
			To:             plan.To(),
			Reason:         cmd.Reason(),
			ActorID:        cmd.ActorID(),
			Forced:         cmd.Force(),
			Warnings:       plan.Warnings(),
			TrackingNumber: cmd.TrackingNumber(),
			Carrier:        cmd.Carrier(),
			Service:        cmd.Service(),
			OccurredAt:     now,
		})
	}

	return result, nil
}

// checkShippingDetails enforces the SHIPPED precondition: the request must
// carry a tracking number and carrier, or a shipment must already exist for
// the order. Checked inside the transaction so it sees the locked snapshot.
func (h *RequestTransitionCommandHandler) checkShippingDetails(
	ctx context.Context,
	uow TransitionUoW,
	cmd RequestTransitionCommand,
) error {
	if cmd.TrackingNumber() != "" && cmd.Carrier() != "" {
		return nil
	}

	if _, err := uow.ShipmentRepository().GetByOrder(ctx, cmd.OrderID()); err != nil {
		return errs.NewValueIsRequiredError("tracking number and carrier")
	}

	return nil
}

// recordRejection appends a TRANSITION_REJECTED audit event through the
// non-transactional appender, so the record survives the rollback of the
// transition transaction. Best effort.
func (h *RequestTransitionCommandHandler) recordRejection(
	ctx context.Context,
	aggregate *order.Order,
	cmd RequestTransitionCommand,
	cause error,
) {
	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		orderevent.KindTransitionRejected,
		fmt.Sprintf("transition to %s rejected: %s", cmd.Target(), cause),
		orderevent.StatusChangedPayload{
			From:    aggregate.Status().String(),
			To:      cmd.Target().String(),
			Reason:  cmd.Reason(),
			ActorID: cmd.ActorID(),
			Forced:  cmd.Force(),
		},
		time.Now().UTC(),
	)
	if err != nil {
		h.logger.Warn("building rejection event failed", "orderId", aggregate.ID().String(), "error", err)
		return
	}

	if err := h.events.Append(ctx, event); err != nil {
		h.logger.Warn("recording rejection failed", "orderId", aggregate.ID().String(), "error", err)
	}
}

func statusChangedEvent(
	orderID kernel.UUID,
	plan order.TransitionPlan,
	cmd RequestTransitionCommand,
	now time.Time,
) (*orderevent.Event, error) {
	message := fmt.Sprintf("status changed from %s to %s", plan.From(), plan.To())
	if plan.NoOp() {
		message = fmt.Sprintf("status %s reasserted (no-op)", plan.To())
	}

	return orderevent.NewEvent(
		kernel.NewUUID(),
		orderID,
		orderevent.KindStatusChanged,
		message,
		orderevent.StatusChangedPayload{
			From:     plan.From().String(),
			To:       plan.To().String(),
			Reason:   cmd.Reason(),
			ActorID:  cmd.ActorID(),
			Forced:   cmd.Force(),
			NoOp:     plan.NoOp(),
			Warnings: plan.Warnings(),
		},
		now,
	)
}
