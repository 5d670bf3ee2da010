package ports

import (
	"context"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
)

// EventAppender is the write half of the event log. Collaborators that only
// record facts (side-effect hooks, the notification dispatcher) depend on
// this narrow interface rather than the full repository.
type EventAppender interface {
	// Append writes one event to the log. Events are append-only: there is
	// no update or delete path anywhere in the contract.
	Append(ctx context.Context, event *orderevent.Event) error
}

// OrderEventRepository defines the persistence contract for the append-only
// event log. The write half serves the transition transaction and the
// side-effect hooks; the read half feeds the timeline and triage query
// handlers.
type OrderEventRepository interface {
	EventAppender

	// HistoryByOrder retrieves the full history for one order ordered by
	// creation time, most recent first, for display.
	HistoryByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error)

	// HistoryChronological retrieves the full history for one order in
	// chronological order, for replay.
	HistoryChronological(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error)

	// CriticalSince retrieves events of critical kinds recorded after the
	// given instant, across all orders, most recent first. Feeds the
	// operational triage view.
	CriticalSince(ctx context.Context, since time.Time) ([]*orderevent.Event, error)
}
