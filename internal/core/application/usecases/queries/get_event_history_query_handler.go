package queries

import (
	"context"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// GetEventHistoryQueryHandler retrieves the order timeline from the
// append-only event log.
type GetEventHistoryQueryHandler struct {
	events ports.OrderEventRepository
}

// NewGetEventHistoryQueryHandler creates a handler for event history queries.
func NewGetEventHistoryQueryHandler(events ports.OrderEventRepository) GetEventHistoryQueryHandler {
	return GetEventHistoryQueryHandler{events: events}
}

// Handle executes the query. Events come back most recent first; an order
// with no events yields an empty slice, not an error, because the caller
// cannot distinguish a fresh order from an unknown one at this layer.
func (h GetEventHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetEventHistoryQuery,
) ([]GetEventHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.events.HistoryByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	responses := make([]GetEventHistoryQueryResponse, 0, len(events))
	for _, event := range events {
		payload, err := orderevent.MarshalPayload(event.Payload())
		if err != nil {
			return nil, err
		}
		responses = append(responses, GetEventHistoryQueryResponse{
			ID:        event.ID(),
			Kind:      event.Kind().String(),
			Message:   event.Message(),
			Payload:   payload,
			CreatedAt: event.CreatedAt(),
		})
	}

	return responses, nil
}
