package orderevent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// payloadSchemaVersion is the current version of the serialized payload
// envelope. Bump when a payload shape changes incompatibly; decoding rejects
// versions newer than this build understands.
const payloadSchemaVersion = 1

// Payload is the structured metadata attached to an OrderEvent.
//
// It is a tagged union of well-known payload shapes, one per family of event
// kinds, with RawPayload as a catch-all for forward compatibility: events
// written by newer builds or with open-namespace kinds decode into RawPayload
// instead of failing.
type Payload interface {
	// payloadType returns the tag stored in the serialized envelope.
	payloadType() string
}

// StatusChangedPayload carries the details of a committed status transition,
// or of a rejected attempt when attached to a TRANSITION_REJECTED event.
type StatusChangedPayload struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Reason   string   `json:"reason,omitempty"`
	ActorID  string   `json:"actorId,omitempty"`
	Forced   bool     `json:"forced,omitempty"`
	NoOp     bool     `json:"noOp,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (StatusChangedPayload) payloadType() string { return "status_changed" }

// StockPayload carries the outcome of a stock compensation attempt.
type StockPayload struct {
	RestoredItemCount int    `json:"restoredItemCount"`
	TotalQuantity     int    `json:"totalQuantity"`
	Reason            string `json:"reason,omitempty"`
	Error             string `json:"error,omitempty"`
}

func (StockPayload) payloadType() string { return "stock" }

// FulfillmentPayload carries the picking work item constructed when an order
// enters fulfilment.
type FulfillmentPayload struct {
	Zone                 string `json:"zone"`
	Priority             string `json:"priority"`
	EstimatedPickMinutes int    `json:"estimatedPickMinutes"`
	ItemCount            int    `json:"itemCount"`
}

func (FulfillmentPayload) payloadType() string { return "fulfillment" }

// ShipmentPayload carries shipment and tracking milestone details.
type ShipmentPayload struct {
	TrackingNumber    string     `json:"trackingNumber"`
	Carrier           string     `json:"carrier"`
	Service           string     `json:"service,omitempty"`
	Status            string     `json:"status,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

func (ShipmentPayload) payloadType() string { return "shipment" }

// NotificationPayload carries the outcome of a notification dispatch attempt.
type NotificationPayload struct {
	Template string   `json:"template"`
	Channels []string `json:"channels"`
	Delivery string   `json:"delivery"`
	Error    string   `json:"error,omitempty"`
}

func (NotificationPayload) payloadType() string { return "notification" }

// RawPayload is the catch-all variant for open-namespace kinds and payload
// shapes this build does not know. The map round-trips through JSON
// untouched.
type RawPayload map[string]any

func (RawPayload) payloadType() string { return "raw" }

// payloadEnvelope is the stored JSON form: a schema version, the union tag,
// and the variant data.
type payloadEnvelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Type          string          `json:"type"`
	Data          json.RawMessage `json:"data"`
}

// MarshalPayload serializes a payload into its versioned JSON envelope.
// A nil payload marshals as an empty raw envelope.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		p = RawPayload{}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload data: %w", err)
	}

	return json.Marshal(payloadEnvelope{
		SchemaVersion: payloadSchemaVersion,
		Type:          p.payloadType(),
		Data:          data,
	})
}

// UnmarshalPayload deserializes a versioned JSON envelope back into its typed
// variant. Unknown union tags decode into RawPayload rather than failing, so
// events written with open-namespace kinds stay readable. Envelopes with a
// schema version newer than this build are rejected.
func UnmarshalPayload(raw []byte) (Payload, error) {
	if len(raw) == 0 {
		return RawPayload{}, nil
	}

	var envelope payloadEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal payload envelope: %w", err)
	}

	if envelope.SchemaVersion > payloadSchemaVersion {
		return nil, errs.NewVersionIsInvalidError(
			"payload schema version",
			fmt.Errorf("version %d is newer than supported version %d",
				envelope.SchemaVersion, payloadSchemaVersion),
		)
	}

	switch envelope.Type {
	case "status_changed":
		return decodeVariant[StatusChangedPayload](envelope.Data)
	case "stock":
		return decodeVariant[StockPayload](envelope.Data)
	case "fulfillment":
		return decodeVariant[FulfillmentPayload](envelope.Data)
	case "shipment":
		return decodeVariant[ShipmentPayload](envelope.Data)
	case "notification":
		return decodeVariant[NotificationPayload](envelope.Data)
	default:
		var raw RawPayload
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &raw); err != nil {
				return nil, fmt.Errorf("unmarshal raw payload: %w", err)
			}
		}
		if raw == nil {
			raw = RawPayload{}
		}
		return raw, nil
	}
}

func decodeVariant[T Payload](data json.RawMessage) (Payload, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", value.payloadType(), err)
	}
	return value, nil
}
