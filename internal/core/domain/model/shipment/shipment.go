// Package shipment contains the Shipment entity and its carrier tracking
// sub-state machine. An order has at most one shipment, created when a
// shipping label is generated and updated by tracking polling.
package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

	// ErrTrackingNumberIsRequired is returned when a shipment is created
	// without a tracking number.
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")

	// ErrCarrierIsRequired is returned when a shipment is created without a carrier.
	ErrCarrierIsRequired = errors.New("carrier is required")
)

// Shipment represents the physical consignment for one order.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID references the order the shipment fulfils
	orderID kernel.UUID

	// trackingNumber is the carrier's tracking reference
	trackingNumber string

	// carrier is the carrier name, e.g. "Royal Mail"
	carrier string

	// service is the carrier service level, e.g. "Tracked 24"
	service string

	// cost is what the carrier charges for the label
	cost kernel.Money

	// status is the current tracking state
	status TrackingStatus

	// estimatedDelivery is the carrier's delivery estimate, if given
	estimatedDelivery *time.Time

	// deliveredAt is the actual delivery time, set on TrackingDelivered
	deliveredAt *time.Time

	// createdAt is when the label was generated
	createdAt time.Time

	// isConstructed ensures the shipment was created via a factory method
	isConstructed bool
}

// NewShipment creates a Shipment in LabelCreated status, as produced when a
// shipping label is generated.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	trackingNumber string,
	carrier string,
	service string,
	cost kernel.Money,
	estimatedDelivery *time.Time,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        LabelCreated,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setTrackingNumber(trackingNumber),
		s.setCarrier(carrier),
	); err != nil {
		return nil, err
	}

	s.service = service
	s.cost = cost
	s.estimatedDelivery = estimatedDelivery
	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence with its full
// state. Used only by the repository layer.
func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	trackingNumber string,
	carrier string,
	service string,
	cost kernel.Money,
	status TrackingStatus,
	estimatedDelivery *time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, orderID, trackingNumber, carrier, service, cost, estimatedDelivery, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.deliveredAt = deliveredAt
	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// OrderID returns the order the shipment fulfils.
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }

// TrackingNumber returns the carrier's tracking reference.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// Carrier returns the carrier name.
func (s *Shipment) Carrier() string { return s.carrier }

// Service returns the carrier service level.
func (s *Shipment) Service() string { return s.service }

// Cost returns the label cost.
func (s *Shipment) Cost() kernel.Money { return s.cost }

// Status returns the current tracking state.
func (s *Shipment) Status() TrackingStatus { return s.status }

// EstimatedDelivery returns the carrier's delivery estimate, or nil.
func (s *Shipment) EstimatedDelivery() *time.Time { return s.estimatedDelivery }

// DeliveredAt returns the actual delivery time, or nil.
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }

// CreatedAt returns when the label was generated.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// ApplyTracking moves the shipment to a new tracking state.
//
// Applying the current state again is a no-op, since carriers repeat scans
// when polled. Any other transition must appear in the tracking adjacency
// table. Moving to TrackingDelivered records the delivery time.
func (s *Shipment) ApplyTracking(target TrackingStatus, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == s.status {
		return nil
	}

	if !s.status.CanTransitionTo(target) {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking transition is invalid",
			fmt.Errorf("cannot move from %s to %s", s.status, target),
		)
	}

	s.status = target
	if target == TrackingDelivered {
		s.deliveredAt = &at
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setCarrier(carrier string) error {
	if carrier == "" {
		return ErrCarrierIsRequired
	}
	s.carrier = carrier
	return nil
}
