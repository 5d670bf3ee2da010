// Package eventrepo persists the append-only order event log. Events are
// written once and never updated or deleted; every read model over the log
// (timeline, triage view) is a filtered projection of the same table.
package eventrepo

import (
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"

	"github.com/google/uuid"
)

// EventDTO represents one event log row. The payload column holds the
// versioned JSON envelope produced by the domain model; the database never
// looks inside it.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Kind      string    `gorm:"index"`
	Message   string
	Payload   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for event entities.
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an event entity to its database representation.
func fromDomain(event *orderevent.Event) (EventDTO, error) {
	payload, err := orderevent.MarshalPayload(event.Payload())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:        event.ID().Bytes(),
		OrderID:   event.OrderID().Bytes(),
		Kind:      event.Kind().String(),
		Message:   event.Message(),
		Payload:   payload,
		CreatedAt: event.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO back to an event entity. Unknown payload
// shapes decode as raw maps, so rows written by newer builds still load.
func toDomain(dto EventDTO) (*orderevent.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	payload, err := orderevent.UnmarshalPayload(dto.Payload)
	if err != nil {
		return nil, err
	}

	return orderevent.NewEvent(id, orderID, orderevent.Kind(dto.Kind), dto.Message, payload, dto.CreatedAt)
}
