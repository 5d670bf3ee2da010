package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
)

// RecordTrackingUpdateCommandHandler advances a shipment through its
// tracking lifecycle and appends a TRACKING_UPDATED event per accepted
// milestone. A carrier-reported delivery also requests the DELIVERED order
// transition through the regular transition path.
type RecordTrackingUpdateCommandHandler struct {
	uowFactory  TransitionUoWFactory
	transitions *RequestTransitionCommandHandler
	logger      *slog.Logger
}

// NewRecordTrackingUpdateCommandHandler creates the tracking update handler.
func NewRecordTrackingUpdateCommandHandler(
	uowFactory TransitionUoWFactory,
	transitions *RequestTransitionCommandHandler,
	logger *slog.Logger,
) RecordTrackingUpdateCommandHandler {
	return RecordTrackingUpdateCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		logger:      logger.With("component", "tracking-update-handler"),
	}
}

// Handle applies the milestone to the order's shipment.
//
// Carriers re-send the current status on every poll, so a milestone equal
// to the shipment's current status is dropped without writing anything. An
// out-of-sequence milestone is a tracking state machine violation and is
// returned as an error.
func (h *RecordTrackingUpdateCommandHandler) Handle(
	ctx context.Context,
	cmd RecordTrackingUpdateCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Repeated scan for the status we already hold: nothing to record.
	if aggregate.Status() == cmd.Status() {
		return nil
	}

	if err := aggregate.ApplyTracking(cmd.Status(), cmd.OccurredAt()); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	message := fmt.Sprintf("tracking update: %s", cmd.Status())
	if cmd.Description() != "" {
		message = fmt.Sprintf("tracking update: %s (%s)", cmd.Status(), cmd.Description())
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		cmd.OrderID(),
		orderevent.KindTrackingUpdated,
		message,
		orderevent.ShipmentPayload{
			TrackingNumber:    aggregate.TrackingNumber(),
			Carrier:           aggregate.Carrier(),
			Service:           aggregate.Service(),
			Status:            aggregate.Status().String(),
			EstimatedDelivery: aggregate.EstimatedDelivery(),
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err := uow.OrderEventRepository().Append(ctx, event); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Status() == shipment.TrackingDelivered {
		h.requestDelivered(ctx, cmd)
	}

	return nil
}

// requestDelivered moves the order itself to DELIVERED after the carrier
// reports delivery. The order may already be DELIVERED (manual confirmation
// raced the poller), which the transition path absorbs as a no-op. Other
// failures are logged; the tracking milestone is already committed.
func (h *RecordTrackingUpdateCommandHandler) requestDelivered(
	ctx context.Context,
	cmd RecordTrackingUpdateCommand,
) {
	transition, err := NewRequestTransitionCommand(
		cmd.OrderID(),
		order.Delivered,
		"carrier reported delivery",
		"system:tracking-poller",
		false,
	)
	if err != nil {
		h.logger.Warn("building delivery transition failed", "orderId", cmd.OrderID().String(), "error", err)
		return
	}

	if _, err := h.transitions.Handle(ctx, transition); err != nil {
		h.logger.Warn("delivery transition failed",
			"orderId", cmd.OrderID().String(),
			"error", err,
		)
	}
}
