package ports

import (
	"context"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The order row is the single source of truth for an order's status; all
// writes go through the transition orchestrator's unit of work.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and takes a row-level lock on
	// it for the duration of the surrounding transaction. Concurrent
	// transition requests for the same order serialize on this lock, and the
	// orchestrator re-validates the transition against the freshly read
	// status to avoid a stale-read race. Outside a transaction it behaves
	// like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves all orders not in a terminal status, for the
	// admin triage surface.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)
}
