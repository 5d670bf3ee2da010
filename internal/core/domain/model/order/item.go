package order

import (
	"errors"
	"fmt"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line item snapshot captured at order-creation time and never
// altered afterward. The product name, size and unit price are copied out of
// the catalog when the order is placed, so the historical record stays
// accurate even if catalog data changes later.
type Item struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// productID references the catalog product the snapshot was taken from
	productID kernel.UUID

	// name is the product name at the time of ordering
	name string

	// size is the selected variant/size, empty when the product has none
	size string

	// quantity is the number of units ordered (must be positive)
	quantity int

	// unitPrice is the per-unit price at the time of ordering
	unitPrice kernel.Money

	// lineTotal is quantity * unitPrice, captured at construction
	lineTotal kernel.Money

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates a validated line item snapshot. The line total is computed
// from quantity and unit price at construction and never recomputed.
//
// Returns an error if the item ID or product ID is invalid, the name is
// empty, or the quantity is not positive.
func NewItem(id, productID kernel.UUID, name, size string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		validateItemName(name),
		validateQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	lineTotal, err := kernel.NewMoney(int64(quantity) * unitPrice.Pence())
	if err != nil {
		return Item{}, err
	}

	return Item{
		id:            id,
		productID:     productID,
		name:          name,
		size:          size,
		quantity:      quantity,
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the catalog product reference.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshot.
func (i Item) Name() string {
	return i.name
}

// Size returns the selected variant/size, or an empty string.
func (i Item) Size() string {
	return i.size
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns quantity * unit price, captured at construction.
func (i Item) LineTotal() kernel.Money {
	return i.lineTotal
}

func validateItemName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return nil
}
