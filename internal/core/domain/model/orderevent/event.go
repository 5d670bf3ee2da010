// Package orderevent contains the append-only event log entities.
//
// An Event is a fact about an order: it is created once, by the transition
// orchestrator or one of its collaborators, and never mutated or deleted.
// Failed transition attempts are logged too, tagged distinctly from
// successful changes, so the trail doubles as an audit log.
package orderevent

import (
	"errors"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent factory method.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one append-only fact about an order.
//
// Invariant: once created, an event is never mutated or deleted. The struct
// has no setters and the repository layer exposes no update or delete path.
type Event struct {
	// id is the unique identifier for the event
	id kernel.UUID

	// orderID references the order the event belongs to
	orderID kernel.UUID

	// kind discriminates what happened
	kind Kind

	// message is the human-readable summary for audit views
	message string

	// payload is the structured metadata for the kind
	payload Payload

	// createdAt is when the fact was recorded
	createdAt time.Time

	// isConstructed ensures the event was created via NewEvent
	isConstructed bool
}

// NewEvent creates a validated event. A nil payload is stored as an empty
// raw payload.
func NewEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	message string,
	payload Payload,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		validateKind(kind),
	); err != nil {
		return nil, err
	}

	if payload == nil {
		payload = RawPayload{}
	}

	return &Event{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		message:       message,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event instance was properly constructed through NewEvent.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Kind returns the event's discriminator tag.
func (e *Event) Kind() Kind {
	return e.kind
}

// Message returns the human-readable summary.
func (e *Event) Message() string {
	return e.message
}

// Payload returns the structured metadata.
func (e *Event) Payload() Payload {
	return e.payload
}

// CreatedAt returns when the fact was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func validateKind(kind Kind) error {
	if kind == "" {
		return errs.NewValueIsRequiredError("event kind")
	}
	return nil
}
