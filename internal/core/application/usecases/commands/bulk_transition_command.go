package commands

import (
	"errors"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

var (
	ErrBulkTransitionCommandIsNotConstructed = errors.New(
		"BulkTransitionCommand must be created via NewBulkTransitionCommand constructor",
	)
	ErrNoOrderIDs = errors.New("at least one order ID is required")
)

// BulkTransitionCommand moves a batch of orders to the same target status.
// Bulk operations are an administrative tool, so warning-gated transitions
// are acknowledged implicitly; there is no per-order confirmation step.
//
// Example:
//
//	cmd, err := NewBulkTransitionCommand(ids, order.Shipped, "warehouse batch 17", "admin:3", true)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("%d applied, %d failed", len(result.Applied), len(result.Failed))
type BulkTransitionCommand struct { //nolint:recvcheck //using for validation
	orderIDs        []kernel.UUID
	target          order.Status
	reason          string
	actorID         string
	continueOnError bool

	guard guard.ConstructorGuard
}

// NewBulkTransitionCommand creates a batch transition command.
// Validates that at least one order ID is given and every ID and the target
// status are valid. With continueOnError, a failing order is recorded and
// the batch moves on; otherwise the batch stops at the first failure.
func NewBulkTransitionCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	reason string,
	actorID string,
	continueOnError bool,
) (BulkTransitionCommand, error) {
	cmd := BulkTransitionCommand{
		reason:          reason,
		actorID:         actorID,
		continueOnError: continueOnError,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
	); err != nil {
		return BulkTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkTransitionCommandIsNotConstructed if validation fails.
func (c BulkTransitionCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionCommandIsNotConstructed)
}

// OrderIDs returns the orders in the batch, in request order.
func (c BulkTransitionCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Target returns the destination status for every order in the batch.
func (c BulkTransitionCommand) Target() order.Status {
	return c.target
}

// Reason returns the free-form reason recorded on each audit event.
func (c BulkTransitionCommand) Reason() string {
	return c.reason
}

// ActorID returns who requested the batch.
func (c BulkTransitionCommand) ActorID() string {
	return c.actorID
}

// ContinueOnError reports whether the batch proceeds past failing orders.
func (c BulkTransitionCommand) ContinueOnError() bool {
	return c.continueOnError
}

func (c *BulkTransitionCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrNoOrderIDs
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *BulkTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
