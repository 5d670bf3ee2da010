package queries

import (
	"context"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// GetCriticalEventsQueryHandler retrieves recent critical events across all
// orders for the operational triage view.
type GetCriticalEventsQueryHandler struct {
	events ports.OrderEventRepository
}

// NewGetCriticalEventsQueryHandler creates a handler for critical event queries.
func NewGetCriticalEventsQueryHandler(events ports.OrderEventRepository) GetCriticalEventsQueryHandler {
	return GetCriticalEventsQueryHandler{events: events}
}

// Handle executes the query. The critical kind filter lives with the event
// log, so a new critical kind automatically shows up here.
func (h GetCriticalEventsQueryHandler) Handle(
	ctx context.Context,
	query GetCriticalEventsQuery,
) ([]GetCriticalEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-time.Duration(query.WindowHours()) * time.Hour)

	events, err := h.events.CriticalSince(ctx, since)
	if err != nil {
		return nil, err
	}

	responses := make([]GetCriticalEventsQueryResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, GetCriticalEventsQueryResponse{
			ID:        event.ID(),
			OrderID:   event.OrderID(),
			Kind:      event.Kind().String(),
			Message:   event.Message(),
			CreatedAt: event.CreatedAt(),
		})
	}

	return responses, nil
}
