// Package shipmentrepo persists shipments and their tracking state.
package shipmentrepo

import (
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents one shipment row. The order ID is unique: an order
// has at most one shipment.
type ShipmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	TrackingNumber    string
	Carrier           string
	Service           string
	Cost              int64
	Status            int `gorm:"index"`
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		TrackingNumber:    aggregate.TrackingNumber(),
		Carrier:           aggregate.Carrier(),
		Service:           aggregate.Service(),
		Cost:              aggregate.Cost().Pence(),
		Status:            int(aggregate.Status()),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a shipment aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	cost, err := kernel.NewMoney(dto.Cost)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id, orderID,
		dto.TrackingNumber, dto.Carrier, dto.Service,
		cost, shipment.TrackingStatus(dto.Status),
		dto.EstimatedDelivery, dto.DeliveredAt,
		dto.CreatedAt,
	)
}
