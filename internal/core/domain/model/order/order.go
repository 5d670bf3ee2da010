package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrEmailIsRequired is returned when an order is created without a contact email.
	// Every order carries an email, whether or not it has an authenticated owner.
	ErrEmailIsRequired = errors.New("order email is required")

	// ErrNoItems is returned when an order is created without line items.
	ErrNoItems = errors.New("order must have at least one item")

	// ErrTotalNotPositive is the business-rule failure for marking an order paid
	// when there is nothing to pay for.
	ErrTotalNotPositive = errors.New("total amount is zero or negative")
)

// Totals holds the monetary breakdown of an order in integer minor units.
// All fields are non-negative by construction of kernel.Money.
type Totals struct {
	subtotal kernel.Money
	discount kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	total    kernel.Money
}

// NewTotals creates a validated totals breakdown.
// Returns an error if total does not equal subtotal - discount + tax + shipping.
func NewTotals(subtotal, discount, tax, shipping, total kernel.Money) (Totals, error) {
	expected := subtotal.Pence() - discount.Pence() + tax.Pence() + shipping.Pence()
	if expected != total.Pence() {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"totals are inconsistent",
			fmt.Errorf("expected total %d, got %d", expected, total.Pence()),
		)
	}
	return Totals{
		subtotal: subtotal,
		discount: discount,
		tax:      tax,
		shipping: shipping,
		total:    total,
	}, nil
}

// Subtotal returns the sum of line totals before adjustments.
func (t Totals) Subtotal() kernel.Money { return t.subtotal }

// Discount returns the discount applied to the order.
func (t Totals) Discount() kernel.Money { return t.discount }

// Tax returns the tax charged on the order.
func (t Totals) Tax() kernel.Money { return t.tax }

// Shipping returns the shipping cost charged to the customer.
func (t Totals) Shipping() kernel.Money { return t.shipping }

// Total returns the grand total the customer pays.
func (t Totals) Total() kernel.Money { return t.total }

// Order represents a storefront order. It is the aggregate root that owns the
// order lifecycle and is the single source of truth for the order's status.
//
// Order follows these invariants:
//   - status is always a member of the closed state set
//   - money fields are non-negative integers (enforced by kernel.Money)
//   - line items are immutable snapshots, never altered after creation
//   - status changes only happen through PlanTransition + ApplyTransition
//   - can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; other components
// never mutate an order directly.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the authenticated owner (nil for guest checkout)
	userID *kernel.UUID

	// email is the contact address, always present
	email string

	// phone is the contact number for SMS notifications, may be empty
	phone string

	// totals is the monetary breakdown captured at checkout
	totals Totals

	// items are the immutable line item snapshots
	items []Item

	// status is the current state in the order lifecycle
	status Status

	// createdAt is when the order was placed
	createdAt time.Time

	// milestone timestamps, set when the corresponding status is entered
	paidAt      *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	refundedAt  *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Pending status. This is the creation path
// used by checkout; persistence reconstruction goes through RestoreOrder.
//
// Parameters:
//   - id: unique identifier for the order
//   - userID: authenticated owner, nil for guest checkout
//   - email: contact address (required)
//   - phone: contact number for SMS, may be empty
//   - totals: validated monetary breakdown
//   - items: at least one immutable line item snapshot
//   - createdAt: order placement time
//
// Returns a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	email string,
	phone string,
	totals Totals,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(userID),
		o.setEmail(email),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.phone = phone
	o.totals = totals
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full state,
// including the current status and milestone timestamps. Used only by the
// repository layer.
func RestoreOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	email string,
	phone string,
	totals Totals,
	items []Item,
	status Status,
	createdAt time.Time,
	paidAt, shippedAt, deliveredAt, cancelledAt, refundedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, userID, email, phone, totals, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.paidAt = paidAt
	o.shippedAt = shippedAt
	o.deliveredAt = deliveredAt
	o.cancelledAt = cancelledAt
	o.refundedAt = refundedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Called when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Owner returns the authenticated owner's ID, or nil for guest orders.
func (o *Order) Owner() *kernel.UUID {
	return o.userID
}

// Email returns the order's contact email.
func (o *Order) Email() string {
	return o.email
}

// Phone returns the order's contact number, or an empty string.
func (o *Order) Phone() string {
	return o.phone
}

// Totals returns the monetary breakdown of the order.
func (o *Order) Totals() Totals {
	return o.totals
}

// Items returns a copy of the order's line item snapshots.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalQuantity returns the total number of units across all line items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PaidAt returns when the order was paid, or nil.
func (o *Order) PaidAt() *time.Time { return o.paidAt }

// ShippedAt returns when the order was shipped, or nil.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// RefundedAt returns when the order was refunded, or nil.
func (o *Order) RefundedAt() *time.Time { return o.refundedAt }

// AgeAt returns how long the order has existed at the given instant.
func (o *Order) AgeAt(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// WasPaid reports whether the order has ever been paid.
func (o *Order) WasPaid() bool {
	return o.paidAt != nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(userID *kernel.UUID) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return err
		}
	}
	o.userID = userID
	return nil
}

func (o *Order) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	o.email = email
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
