package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// DeliveryHook records the DELIVERY_CONFIRMED event when an order reaches
// DELIVERED, closing out the order's happy path in the event log.
type DeliveryHook struct {
	events ports.EventAppender
}

// NewDeliveryHook creates the delivery confirmation hook.
func NewDeliveryHook(events ports.EventAppender) *DeliveryHook {
	return &DeliveryHook{events: events}
}

// Name identifies the hook in logs.
func (h *DeliveryHook) Name() string { return "delivery" }

// AfterTransition appends the confirmation event for DELIVERED transitions.
func (h *DeliveryHook) AfterTransition(ctx context.Context, snap TransitionSnapshot) error {
	if snap.To != order.Delivered {
		return nil
	}

	message := "delivery confirmed"
	if snap.Reason != "" {
		message = fmt.Sprintf("delivery confirmed: %s", snap.Reason)
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		snap.OrderID,
		orderevent.KindDeliveryConfirmed,
		message,
		orderevent.StatusChangedPayload{
			From:    snap.From.String(),
			To:      snap.To.String(),
			Reason:  snap.Reason,
			ActorID: snap.ActorID,
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return h.events.Append(ctx, event)
}
