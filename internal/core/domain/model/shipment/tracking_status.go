package shipment

import (
	"fmt"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// TrackingStatus represents the carrier-facing state of a shipment. It is a
// sub-state machine independent of the order's lifecycle status: an order is
// SHIPPED the moment a carrier takes custody, while the shipment itself moves
// through these states as tracking updates arrive.
//
// State transitions:
//
//	LabelCreated ──> InTransit ──> OutForDelivery ──> Delivered
//	      │              │ ▲              │ ▲
//	      └──────────────┼─┼──────────────┼─┴── Exception recovers to any
//	                     ▼ │              ▼      active state
//	                  Exception ──────────┘
//
// Delivered is terminal. Exception (failed delivery attempt, customs hold)
// can recover back into the active flow.
type TrackingStatus int

const (
	// TrackingUnknown represents an invalid or undefined tracking status.
	TrackingUnknown TrackingStatus = iota

	// LabelCreated is the initial status when a shipping label is generated.
	LabelCreated

	// InTransit indicates the carrier has scanned the parcel into its network.
	InTransit

	// OutForDelivery indicates the parcel is on a delivery vehicle.
	OutForDelivery

	// TrackingDelivered indicates the carrier confirmed delivery. Terminal.
	TrackingDelivered

	// TrackingException indicates a delivery problem the carrier reported.
	TrackingException
)

func getTrackingStatusStrings() map[TrackingStatus]string {
	return map[TrackingStatus]string{
		TrackingUnknown:   "UNKNOWN",
		LabelCreated:      "LABEL_CREATED",
		InTransit:         "IN_TRANSIT",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		TrackingDelivered: "DELIVERED",
		TrackingException: "EXCEPTION",
	}
}

func getTrackingAdjacency() map[TrackingStatus][]TrackingStatus {
	return map[TrackingStatus][]TrackingStatus{
		LabelCreated:      {InTransit, TrackingException},
		InTransit:         {OutForDelivery, TrackingDelivered, TrackingException},
		OutForDelivery:    {TrackingDelivered, TrackingException},
		TrackingException: {InTransit, OutForDelivery, TrackingDelivered},
		TrackingDelivered: {},
	}
}

// TrackingStatusFromString parses a carrier status string (e.g. "IN_TRANSIT").
func TrackingStatusFromString(s string) (TrackingStatus, error) {
	for status, str := range getTrackingStatusStrings() {
		if str == s && status != TrackingUnknown {
			return status, nil
		}
	}
	return TrackingUnknown, errs.NewValueIsInvalidErrorWithCause(
		"tracking status is invalid",
		fmt.Errorf("%q is not a valid tracking status", s),
	)
}

// Validate checks if the TrackingStatus value is a member of the closed enum.
func (s TrackingStatus) Validate() error {
	if _, ok := getTrackingAdjacency()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking status is invalid",
			fmt.Errorf("%d is not a valid tracking status", s),
		)
	}
	return nil
}

// String returns the canonical name of the tracking status.
// Implements fmt.Stringer.
func (s TrackingStatus) String() string {
	if str, ok := getTrackingStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transitions are defined out of the status.
func (s TrackingStatus) IsTerminal() bool {
	return s == TrackingDelivered
}

// CanTransitionTo reports whether the tracking adjacency contains s -> target.
func (s TrackingStatus) CanTransitionTo(target TrackingStatus) bool {
	for _, allowed := range getTrackingAdjacency()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
