package http

import (
	"encoding/json"
	"time"
)

// Request bodies.

type createOrderRequest struct {
	UserID string             `json:"userId,omitempty"`
	Email  string             `json:"email"`
	Phone  string             `json:"phone,omitempty"`
	Totals orderTotalsRequest `json:"totals"`
	Items  []orderItemRequest `json:"items"`
}

type orderTotalsRequest struct {
	SubtotalPence int64 `json:"subtotalPence"`
	DiscountPence int64 `json:"discountPence"`
	TaxPence      int64 `json:"taxPence"`
	ShippingPence int64 `json:"shippingPence"`
	TotalPence    int64 `json:"totalPence"`
}

type orderItemRequest struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPricePence int64  `json:"unitPricePence"`
}

type transitionRequest struct {
	Target         string `json:"target"`
	Reason         string `json:"reason,omitempty"`
	ActorID        string `json:"actorId,omitempty"`
	Force          bool   `json:"force,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	Service        string `json:"service,omitempty"`
}

type bulkTransitionRequest struct {
	OrderIDs        []string `json:"orderIds"`
	Target          string   `json:"target"`
	Reason          string   `json:"reason,omitempty"`
	ActorID         string   `json:"actorId,omitempty"`
	ContinueOnError bool     `json:"continueOnError,omitempty"`
}

// Response bodies.

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

type transitionResponse struct {
	OrderID  string   `json:"orderId"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	NoOp     bool     `json:"noOp"`
	Warnings []string `json:"warnings,omitempty"`
}

type bulkTransitionResponse struct {
	Applied []bulkAppliedResponse `json:"applied"`
	Failed  []bulkFailedResponse  `json:"failed"`
}

type bulkAppliedResponse struct {
	OrderID  string   `json:"orderId"`
	NoOp     bool     `json:"noOp"`
	Warnings []string `json:"warnings,omitempty"`
}

type bulkFailedResponse struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type validTransitionsResponse struct {
	Status      string   `json:"status"`
	AllowedNext []string `json:"allowedNext"`
}

type orderEventResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type criticalEventResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type openOrderResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	TotalPence int64     `json:"totalPence"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// errorResponse is the uniform error body. AllowedNext is present on
// transition conflicts; RequiresConfirmation marks 409s that succeed when
// resubmitted with force.
type errorResponse struct {
	Code                 int      `json:"code"`
	Message              string   `json:"message"`
	AllowedNext          []string `json:"allowedNext,omitempty"`
	RequiresConfirmation bool     `json:"requiresConfirmation,omitempty"`
}
