package commands

import (
	"errors"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
)

// RequestTransitionCommand represents a request to move an order to a new
// status. The force flag acknowledges warning-gated transitions such as
// cancelling a paid order; shipping details are only consulted when the
// target status is SHIPPED.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(orderID, order.Paid, "payment captured", "worker:payments", false)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	fmt.Printf("order is now %s", result.To)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string
	actorID string
	force   bool

	trackingNumber string
	carrier        string
	service        string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a command to transition an order.
// Validates that the order ID and target status are valid. The reason and
// actor ID are free-form audit fields and may be empty.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
	actorID string,
	force bool,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		reason:  reason,
		actorID: actorID,
		force:   force,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

// WithShippingDetails returns a copy of the command carrying the tracking
// number, carrier and service level to ship the order with. Used when the
// caller supplies label details alongside the SHIPPED request.
func (c RequestTransitionCommand) WithShippingDetails(trackingNumber, carrier, service string) RequestTransitionCommand {
	c.trackingNumber = trackingNumber
	c.carrier = carrier
	c.service = service
	return c
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestTransitionCommandIsNotConstructed if validation fails.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c RequestTransitionCommand) Target() order.Status {
	return c.target
}

// Reason returns the free-form reason recorded in the audit event.
func (c RequestTransitionCommand) Reason() string {
	return c.reason
}

// ActorID returns who requested the transition, e.g. "admin:42" or
// "worker:payments". Empty for anonymous callers.
func (c RequestTransitionCommand) ActorID() string {
	return c.actorID
}

// Force reports whether warning-gated transitions are acknowledged.
func (c RequestTransitionCommand) Force() bool {
	return c.force
}

// TrackingNumber returns the carrier tracking number, if supplied.
func (c RequestTransitionCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Carrier returns the carrier name, if supplied.
func (c RequestTransitionCommand) Carrier() string {
	return c.carrier
}

// Service returns the carrier service level, if supplied.
func (c RequestTransitionCommand) Service() string {
	return c.service
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
