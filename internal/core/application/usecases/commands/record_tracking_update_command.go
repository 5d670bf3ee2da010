package commands

import (
	"errors"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

var (
	ErrRecordTrackingUpdateCommandIsNotConstructed = errors.New(
		"RecordTrackingUpdateCommand must be created via NewRecordTrackingUpdateCommand constructor",
	)
	ErrOccurredAtIsRequired = errors.New("occurredAt is required")
)

// RecordTrackingUpdateCommand applies one carrier tracking milestone to an
// order's shipment. Issued by the tracking poll job, or by a carrier
// webhook when one is configured.
type RecordTrackingUpdateCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	status      shipment.TrackingStatus
	description string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewRecordTrackingUpdateCommand creates a tracking update command.
// Validates the order ID, the tracking status and that the milestone time
// is set. The description is the carrier's scan text and may be empty.
func NewRecordTrackingUpdateCommand(
	orderID kernel.UUID,
	status shipment.TrackingStatus,
	description string,
	occurredAt time.Time,
) (RecordTrackingUpdateCommand, error) {
	cmd := RecordTrackingUpdateCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setOccurredAt(occurredAt),
	); err != nil {
		return RecordTrackingUpdateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordTrackingUpdateCommandIsNotConstructed if validation fails.
func (c RecordTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingUpdateCommandIsNotConstructed)
}

// OrderID returns the order whose shipment the milestone belongs to.
func (c RecordTrackingUpdateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the tracking status the carrier reported.
func (c RecordTrackingUpdateCommand) Status() shipment.TrackingStatus {
	return c.status
}

// Description returns the carrier's scan text.
func (c RecordTrackingUpdateCommand) Description() string {
	return c.description
}

// OccurredAt returns when the carrier recorded the milestone.
func (c RecordTrackingUpdateCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *RecordTrackingUpdateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordTrackingUpdateCommand) setStatus(status shipment.TrackingStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *RecordTrackingUpdateCommand) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return ErrOccurredAtIsRequired
	}

	c.occurredAt = occurredAt
	return nil
}
