package ports

import (
	"context"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
)

// External collaborator contracts. These capabilities are owned by other
// services; the orchestrator calls them through these narrow interfaces and
// tolerates their failure without touching the authoritative order state.

// StockRestoreResult is the outcome of an inventory compensation call.
type StockRestoreResult struct {
	Success           bool
	RestoredItemCount int
}

// StockRestorer reverses inventory reservations when an order is cancelled.
// Owned by the catalog/inventory service.
type StockRestorer interface {
	RestoreStock(ctx context.Context, orderID kernel.UUID, reason string) (StockRestoreResult, error)
}

// Label is the outcome of creating a shipping label with a carrier.
type Label struct {
	TrackingNumber    string
	LabelURL          string
	Cost              kernel.Money
	EstimatedDelivery *time.Time
}

// LabelRequest describes the consignment a label is needed for.
type LabelRequest struct {
	OrderID kernel.UUID
	Carrier string
	Service string
	Weight  int // grams
}

// TrackingUpdate is one tracking milestone reported by a carrier.
type TrackingUpdate struct {
	TrackingNumber string
	Status         string
	Description    string
	OccurredAt     time.Time
}

// Carrier is the shipping collaborator: label creation plus the polling
// surface consumed by the shipment tracking job.
type Carrier interface {
	CreateLabel(ctx context.Context, req LabelRequest) (Label, error)
	Track(ctx context.Context, trackingNumber, carrier string) (TrackingUpdate, error)
}

// Message is one outbound customer message.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MessageSender is the mail/SMS transport collaborator.
type MessageSender interface {
	Send(ctx context.Context, msg Message) error
}
