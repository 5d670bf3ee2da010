package services

import (
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
)

// Priority is the urgency class of a picking work item.
type Priority int

const (
	// PriorityNormal is the default for fresh, ordinary-value orders.
	PriorityNormal Priority = iota

	// PriorityHigh is assigned to high-value orders and orders waiting
	// longer than twelve hours.
	PriorityHigh

	// PriorityUrgent is assigned to orders waiting longer than a day.
	PriorityUrgent
)

// String returns the canonical priority name. Implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	default:
		return "NORMAL"
	}
}

// highValueThresholdPence is the order total above which picking is
// escalated to HIGH regardless of age (£500.00).
const highValueThresholdPence = 50_000

// Pick duration estimate: a fixed setup walk plus a per-unit handling time.
const (
	basePickDuration    = 5 * time.Minute
	perUnitPickDuration = 90 * time.Second
)

// pickingZones are the warehouse zones items are picked from. Zone
// assignment keys off the first line item's product so repeated plans for
// the same order land in the same zone.
var pickingZones = []string{"A", "B", "C", "D", "E"}

// PickingWorkItem is the warehouse-facing unit of work generated when an
// order enters active fulfilment.
type PickingWorkItem struct {
	OrderID           kernel.UUID
	Zone              string
	Priority          Priority
	ItemCount         int
	EstimatedDuration time.Duration
}

// FulfillmentPlanner is a domain service that constructs picking work items.
// It is deterministic and side-effect free: the same order and clock reading
// always produce the same work item.
type FulfillmentPlanner struct{}

// NewFulfillmentPlanner creates a new FulfillmentPlanner instance.
func NewFulfillmentPlanner() FulfillmentPlanner {
	return FulfillmentPlanner{}
}

// Plan builds the picking work item for an order entering fulfilment.
//
// Priority is the strongest rule that applies:
//   - orders older than 24 hours are URGENT
//   - orders older than 12 hours, or with a total above £500, are HIGH
//   - everything else is NORMAL
//
// Returns an error if the order is not properly constructed.
func (p FulfillmentPlanner) Plan(o *order.Order, now time.Time) (PickingWorkItem, error) {
	if err := o.Validate(); err != nil {
		return PickingWorkItem{}, err
	}

	quantity := o.TotalQuantity()

	return PickingWorkItem{
		OrderID:           o.ID(),
		Zone:              p.assignZone(o),
		Priority:          p.priorityFor(o, now),
		ItemCount:         quantity,
		EstimatedDuration: basePickDuration + time.Duration(quantity)*perUnitPickDuration,
	}, nil
}

// priorityFor applies the escalation cascade. Age is checked before value:
// a day-old high-value order is URGENT, not HIGH. The value rule fires only
// strictly above the threshold, so an exactly-£500 order is not escalated.
func (p FulfillmentPlanner) priorityFor(o *order.Order, now time.Time) Priority {
	age := o.AgeAt(now)

	switch {
	case age > 24*time.Hour:
		return PriorityUrgent
	case age > 12*time.Hour:
		return PriorityHigh
	case o.Totals().Total().Pence() > highValueThresholdPence:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// assignZone derives a stable warehouse zone from the first line item's
// product reference.
func (p FulfillmentPlanner) assignZone(o *order.Order) string {
	items := o.Items()
	if len(items) == 0 {
		return pickingZones[0]
	}

	raw := items[0].ProductID().Bytes()
	return pickingZones[int(raw[0])%len(pickingZones)]
}

// Describe renders the work item as a single audit line.
func (w PickingWorkItem) Describe() string {
	return fmt.Sprintf("pick %d units from zone %s (%s, ~%s)",
		w.ItemCount, w.Zone, w.Priority, w.EstimatedDuration)
}
