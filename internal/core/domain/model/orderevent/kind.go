package orderevent

// Kind is the discriminator tag on an OrderEvent identifying what happened.
//
// The type is an open string namespace layered over a small closed set of
// well-known kinds. Collaborators may append events with domain-specific
// kinds not listed here; only the well-known kinds participate in
// critical-event detection and typed payload decoding.
type Kind string

// Well-known event kinds.
const (
	// KindStatusChanged records a committed order status transition.
	KindStatusChanged Kind = "STATUS_CHANGED"

	// KindTransitionRejected is the audit breadcrumb for a transition attempt
	// that failed validation. Tagged distinctly from successful changes.
	KindTransitionRejected Kind = "TRANSITION_REJECTED"

	// KindStockRestored records a successful inventory compensation after a
	// cancellation.
	KindStockRestored Kind = "STOCK_RESTORED"

	// KindStockRestoreFailed records a failed inventory compensation. The
	// cancellation itself stands; reconciliation is a retryable concern.
	KindStockRestoreFailed Kind = "STOCK_RESTORE_FAILED"

	// KindFulfillmentStarted records that a picking work item was constructed.
	KindFulfillmentStarted Kind = "FULFILLMENT_STARTED"

	// KindShippingProcessed records that a shipment took custody of the order.
	KindShippingProcessed Kind = "SHIPPING_PROCESSED"

	// KindDeliveryConfirmed records carrier-confirmed delivery.
	KindDeliveryConfirmed Kind = "DELIVERY_CONFIRMED"

	// KindTrackingUpdated records a tracking milestone from carrier polling.
	KindTrackingUpdated Kind = "TRACKING_UPDATED"

	// KindNotificationSent is the advisory marker that a notification dispatch
	// was attempted. It is bookkeeping, not a delivery guarantee.
	KindNotificationSent Kind = "NOTIFICATION_SENT"

	// KindNotificationError records a notification dispatch failure.
	KindNotificationError Kind = "NOTIFICATION_ERROR"

	// KindPaymentFailed records a payment authority failure.
	KindPaymentFailed Kind = "PAYMENT_FAILED"

	// KindStockShortage records reserved stock falling short during picking.
	KindStockShortage Kind = "STOCK_SHORTAGE"

	// KindSystemError records an unexpected internal failure.
	KindSystemError Kind = "SYSTEM_ERROR"

	// KindWebhookFailed records a failed inbound webhook.
	KindWebhookFailed Kind = "WEBHOOK_FAILED"
)

// CriticalKinds returns the kinds surfaced in the cross-order operational
// triage feed.
func CriticalKinds() []Kind {
	return []Kind{
		KindPaymentFailed,
		KindStockShortage,
		KindStockRestoreFailed,
		KindSystemError,
		KindWebhookFailed,
	}
}

// IsCritical reports whether the kind participates in the critical-event feed.
func (k Kind) IsCritical() bool {
	for _, critical := range CriticalKinds() {
		if k == critical {
			return true
		}
	}
	return false
}

// String returns the kind's string form.
func (k Kind) String() string {
	return string(k)
}
