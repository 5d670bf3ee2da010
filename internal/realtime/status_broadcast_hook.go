package realtime

import (
	"context"
	"fmt"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
)

// StatusBroadcastHook pushes every committed status change to the hub so
// open order pages and the admin dashboard update without polling.
type StatusBroadcastHook struct {
	hub *Hub
}

// NewStatusBroadcastHook creates the hook over a hub.
func NewStatusBroadcastHook(hub *Hub) *StatusBroadcastHook {
	return &StatusBroadcastHook{hub: hub}
}

func (h *StatusBroadcastHook) Name() string {
	return "realtime-broadcast"
}

// AfterTransition broadcasts the change. Guest orders have no owner, so
// their events carry no user scope and reach admin listeners only.
func (h *StatusBroadcastHook) AfterTransition(_ context.Context, snap commands.TransitionSnapshot) error {
	event := Event{
		Type:    "order.status_changed",
		OrderID: snap.OrderID.String(),
		Status:  snap.To.String(),
		Message: fmt.Sprintf("order %s is now %s", snap.OrderID, snap.To),
		At:      snap.OccurredAt,
	}
	if owner := snap.Order.Owner(); owner != nil {
		event.UserID = owner.String()
	}

	h.hub.Broadcast(event)
	return nil
}
