package ports

import (
	"context"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipments.
// An order has at most one shipment.
type ShipmentRepository interface {
	// Add persists a new shipment.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByOrder retrieves the shipment for an order.
	// Returns an ObjectNotFoundError when the order has no shipment.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)

	// GetAllActive retrieves all shipments not yet in a terminal tracking
	// status. The tracking poll job iterates these.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)
}
