package queries

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

var (
	ErrGetEventHistoryQueryIsNotConstructed = errors.New(
		"GetEventHistoryQuery must be created via NewGetEventHistoryQuery constructor",
	)
)

// GetEventHistoryQuery retrieves the full event log for one order, most
// recent first, as shown on the order timeline.
//
// Example:
//
//	query, err := NewGetEventHistoryQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	events, err := handler.Handle(ctx, query)
type GetEventHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetEventHistoryQuery creates a query for one order's event history.
// Validates the order ID.
func NewGetEventHistoryQuery(orderID kernel.UUID) (GetEventHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetEventHistoryQuery{}, err
	}

	return GetEventHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetEventHistoryQueryIsNotConstructed if validation fails.
func (q GetEventHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetEventHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetEventHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetEventHistoryQueryResponse is one timeline entry. The payload is the
// stored JSON envelope, passed through untouched for the API to render.
type GetEventHistoryQueryResponse struct {
	ID        kernel.UUID
	Kind      string
	Message   string
	Payload   json.RawMessage
	CreatedAt time.Time
}
