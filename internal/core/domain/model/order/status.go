package order

import (
	"fmt"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed adjacency table to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> AwaitingPayment ──> Paid ──> Fulfilling ──> Shipped ──> Delivered
//	   │                │            │  │        │             │
//	   │                │            │  └────────┼──> Shipped  └──> Refunded
//	   └── Cancelled <──┴────────────┴───────────┘
//	       (Paid, Fulfilling, Shipped may also move to Refunded)
//
// Delivered, Cancelled and Refunded are terminal: no transitions leave them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence, the API surface, and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// AwaitingPayment indicates checkout completed and payment is in flight.
	AwaitingPayment

	// Paid indicates payment was captured for the order.
	Paid

	// Fulfilling indicates the warehouse is picking and packing the order.
	Fulfilling

	// Shipped indicates a carrier has taken custody of the parcel.
	Shipped

	// Delivered indicates the carrier confirmed delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before shipping. Terminal.
	Cancelled

	// Refunded indicates the order was paid and then refunded. Terminal.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// The strings are the storefront's canonical SCREAMING_SNAKE status values, used
// in the database, the API, and notification templates.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Pending:         "PENDING",
		AwaitingPayment: "AWAITING_PAYMENT",
		Paid:            "PAID",
		Fulfilling:      "FULFILLING",
		Shipped:         "SHIPPED",
		Delivered:       "DELIVERED",
		Cancelled:       "CANCELLED",
		Refunded:        "REFUNDED",
	}
}

// getAdjacency returns the fixed adjacency table of the state machine.
// A transition is structurally allowed only if the target appears in the
// slice for the current status. Terminal statuses map to empty slices.
func getAdjacency() map[Status][]Status {
	return map[Status][]Status{
		Pending:         {AwaitingPayment, Paid, Cancelled},
		AwaitingPayment: {Paid, Cancelled},
		Paid:            {Fulfilling, Shipped, Cancelled, Refunded},
		Fulfilling:      {Shipped, Cancelled, Refunded},
		Shipped:         {Delivered, Refunded},
		Delivered:       {},
		Cancelled:       {},
		Refunded:        {},
	}
}

// StatusFromString parses a canonical status string (e.g. "AWAITING_PAYMENT")
// into a Status. Returns an error for any string outside the closed enum.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, AwaitingPayment, Paid, Fulfilling, Shipped, Delivered, Cancelled, Refunded}
}

// Validate checks if the Status value is a member of the closed enum.
// Unknown (0) and any other values are invalid. Used to guard Status values
// arriving from external sources (database rows, API requests) before use.
func (s Status) Validate() error {
	if _, ok := getAdjacency()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the canonical name of the status, e.g. "AWAITING_PAYMENT".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transitions are defined out of the status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// ValidNext returns the statuses the order may move to from s, per the
// adjacency table. The returned slice is a defensive copy and is empty for
// terminal or invalid statuses.
func (s Status) ValidNext() []Status {
	allowed, ok := getAdjacency()[s]
	if !ok {
		return []Status{}
	}
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}

// ValidNextStrings returns ValidNext as canonical status strings, for error
// payloads and caller guidance.
func (s Status) ValidNextStrings() []string {
	allowed := s.ValidNext()
	result := make([]string, len(allowed))
	for i, status := range allowed {
		result[i] = status.String()
	}
	return result
}

// CanTransitionTo reports whether the adjacency table contains s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAdjacency()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// typicalPredecessor returns the expected prior status for targets whose
// skipping is tolerated with a warning rather than rejected. Real warehouse
// flows occasionally skip steps, so these are soft guidance only.
func typicalPredecessor(target Status) (Status, bool) {
	switch target {
	case Fulfilling:
		return Paid, true
	case Shipped:
		return Fulfilling, true
	default:
		return Unknown, false
	}
}
