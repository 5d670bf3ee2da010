package commands

import (
	"context"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/services"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// FulfillmentHook builds the warehouse picking work item when an order
// enters FULFILLING and records it as a FULFILLMENT_STARTED event.
type FulfillmentHook struct {
	planner services.FulfillmentPlanner
	events  ports.EventAppender
}

// NewFulfillmentHook creates the fulfilment planning hook.
func NewFulfillmentHook(planner services.FulfillmentPlanner, events ports.EventAppender) *FulfillmentHook {
	return &FulfillmentHook{planner: planner, events: events}
}

// Name identifies the hook in logs.
func (h *FulfillmentHook) Name() string { return "fulfillment" }

// AfterTransition plans picking work for FULFILLING transitions.
func (h *FulfillmentHook) AfterTransition(ctx context.Context, snap TransitionSnapshot) error {
	if snap.To != order.Fulfilling {
		return nil
	}

	work, err := h.planner.Plan(snap.Order, snap.OccurredAt)
	if err != nil {
		return err
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		snap.OrderID,
		orderevent.KindFulfillmentStarted,
		work.Describe(),
		orderevent.FulfillmentPayload{
			Zone:                 work.Zone,
			Priority:             work.Priority.String(),
			EstimatedPickMinutes: int(work.EstimatedDuration.Minutes()),
			ItemCount:            work.ItemCount,
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return h.events.Append(ctx, event)
}
