package queries

import (
	"errors"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

const (
	minCriticalWindowHours = 1
	maxCriticalWindowHours = 168 // one week
)

var (
	ErrGetCriticalEventsQueryIsNotConstructed = errors.New(
		"GetCriticalEventsQuery must be created via NewGetCriticalEventsQuery constructor",
	)
)

// GetCriticalEventsQuery retrieves events of critical kinds across all
// orders within a trailing window, the operational triage view.
//
// Example:
//
//	query, err := NewGetCriticalEventsQuery(24)
//	if err != nil {
//	    return err
//	}
//
//	critical, err := handler.Handle(ctx, query)
type GetCriticalEventsQuery struct { //nolint:recvcheck //using for validation
	windowHours int

	guard guard.ConstructorGuard
}

// NewGetCriticalEventsQuery creates a query over the trailing window.
// The window is given in hours, between 1 and 168.
func NewGetCriticalEventsQuery(windowHours int) (GetCriticalEventsQuery, error) {
	if windowHours < minCriticalWindowHours || windowHours > maxCriticalWindowHours {
		return GetCriticalEventsQuery{}, errs.NewValueIsOutOfRangeError(
			"windowHours", windowHours, minCriticalWindowHours, maxCriticalWindowHours,
		)
	}

	return GetCriticalEventsQuery{
		windowHours: windowHours,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCriticalEventsQueryIsNotConstructed if validation fails.
func (q GetCriticalEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetCriticalEventsQueryIsNotConstructed)
}

// WindowHours returns the trailing window size in hours.
func (q GetCriticalEventsQuery) WindowHours() int {
	return q.windowHours
}

// GetCriticalEventsQueryResponse is one critical event row.
type GetCriticalEventsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      string
	Message   string
	CreatedAt time.Time
}
