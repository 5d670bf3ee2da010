package commands

import (
	"errors"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a checkout placing a new order. The order
// enters the lifecycle in PENDING status; payment, fulfilment and shipping
// all happen through later status transitions.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, &userID, "jo@example.com", "+447700900123", totals, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  *kernel.UUID
	email   string
	phone   string
	totals  order.Totals
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// The user ID is nil for guest checkout; the phone number is optional.
// Item and totals validation happens in the order constructor, so the
// command only checks the identifiers it carries.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID *kernel.UUID,
	email string,
	phone string,
	totals order.Totals,
	items []order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		email:  email,
		phone:  phone,
		totals: totals,
		items:  items,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the authenticated owner, nil for guest checkout.
func (c CreateOrderCommand) UserID() *kernel.UUID {
	return c.userID
}

// Email returns the contact address for notifications.
func (c CreateOrderCommand) Email() string {
	return c.email
}

// Phone returns the contact number for SMS, may be empty.
func (c CreateOrderCommand) Phone() string {
	return c.phone
}

// Totals returns the monetary breakdown captured at checkout.
func (c CreateOrderCommand) Totals() order.Totals {
	return c.totals
}

// Items returns the line item snapshots captured at checkout.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}

	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
