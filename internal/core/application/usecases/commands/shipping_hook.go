package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// ShippingHook creates the shipment record when an order moves to SHIPPED.
// The label is priced through the carrier collaborator; a pricing failure
// does not block the shipment record, which is created with zero cost and
// picked up by the tracking poller either way. Appends SHIPPING_PROCESSED.
type ShippingHook struct {
	shipments ports.ShipmentRepository
	carrier   ports.Carrier
	events    ports.EventAppender
}

// NewShippingHook creates the shipment registration hook.
func NewShippingHook(
	shipments ports.ShipmentRepository,
	carrier ports.Carrier,
	events ports.EventAppender,
) *ShippingHook {
	return &ShippingHook{shipments: shipments, carrier: carrier, events: events}
}

// Name identifies the hook in logs.
func (h *ShippingHook) Name() string { return "shipping" }

// AfterTransition registers the shipment for SHIPPED transitions. When a
// shipment already exists for the order (label created during fulfilment),
// only the event is appended.
func (h *ShippingHook) AfterTransition(ctx context.Context, snap TransitionSnapshot) error {
	if snap.To != order.Shipped {
		return nil
	}

	existing, err := h.shipments.GetByOrder(ctx, snap.OrderID)
	if err == nil {
		return h.appendProcessed(ctx, snap.OrderID, existing)
	}

	if snap.TrackingNumber == "" || snap.Carrier == "" {
		return fmt.Errorf("no shipment on record and no shipping details for order %s", snap.OrderID)
	}

	var cost kernel.Money
	var estimatedDelivery *time.Time

	label, labelErr := h.carrier.CreateLabel(ctx, ports.LabelRequest{
		OrderID: snap.OrderID,
		Carrier: snap.Carrier,
		Service: snap.Service,
	})
	if labelErr == nil {
		cost = label.Cost
		estimatedDelivery = label.EstimatedDelivery
	}

	created, err := shipment.NewShipment(
		kernel.NewUUID(),
		snap.OrderID,
		snap.TrackingNumber,
		snap.Carrier,
		snap.Service,
		cost,
		estimatedDelivery,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err := h.shipments.Add(ctx, created); err != nil {
		return err
	}

	if err := h.appendProcessed(ctx, snap.OrderID, created); err != nil {
		return err
	}

	return labelErr
}

func (h *ShippingHook) appendProcessed(
	ctx context.Context,
	orderID kernel.UUID,
	sh *shipment.Shipment,
) error {
	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		orderID,
		orderevent.KindShippingProcessed,
		fmt.Sprintf("shipped via %s, tracking %s", sh.Carrier(), sh.TrackingNumber()),
		orderevent.ShipmentPayload{
			TrackingNumber:    sh.TrackingNumber(),
			Carrier:           sh.Carrier(),
			Service:           sh.Service(),
			Status:            sh.Status().String(),
			EstimatedDelivery: sh.EstimatedDelivery(),
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return h.events.Append(ctx, event)
}
