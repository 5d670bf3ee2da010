// Package notify dispatches customer notifications for committed order
// status changes. Templates are keyed by the order status the change landed
// on; dispatch is best-effort and records its outcome in the order event log.
package notify

import (
	"regexp"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
)

// Template describes one customer-facing notification. Subject and bodies
// use {{name}} placeholders; Critical marks templates whose total dispatch
// failure must raise an admin alert.
type Template struct {
	Name     string
	Subject  string
	Body     string
	SMSBody  string
	Critical bool
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z][a-zA-Z0-9_]*)\}\}`)

// Render substitutes vars into text. Placeholders with no matching var stay
// verbatim so a half-filled message is still readable and the gap visible.
func Render(text string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// defaultTemplates maps each notifiable order status to its template. Statuses
// without an entry produce no customer notification.
var defaultTemplates = map[order.Status]Template{
	order.AwaitingPayment: {
		Name:    "payment_requested",
		Subject: "Complete your payment for order {{orderID}}",
		Body:    "Hi,\n\nYour order {{orderID}} ({{total}}) is reserved and awaiting payment. Complete checkout to confirm it.\n\nNVRSTL",
		SMSBody: "NVRSTL: order {{orderID}} is awaiting payment.",
	},
	order.Paid: {
		Name:    "order_confirmed",
		Subject: "Order {{orderID}} confirmed",
		Body:    "Hi,\n\nThanks for your order! We've received your payment of {{total}} for order {{orderID}} and will start preparing it shortly.\n\nNVRSTL",
		SMSBody: "NVRSTL: payment received for order {{orderID}}. We're on it.",
	},
	order.Shipped: {
		Name:    "order_shipped",
		Subject: "Order {{orderID}} is on its way",
		Body:    "Hi,\n\nYour order {{orderID}} has shipped with {{carrier}}.\nTracking number: {{trackingNumber}}\n\nNVRSTL",
		SMSBody: "NVRSTL: order {{orderID}} shipped via {{carrier}}, tracking {{trackingNumber}}.",
	},
	order.Delivered: {
		Name:    "order_delivered",
		Subject: "Order {{orderID}} delivered",
		Body:    "Hi,\n\nYour order {{orderID}} was delivered. We hope you love it.\n\nNVRSTL",
		SMSBody: "NVRSTL: order {{orderID}} delivered.",
	},
	order.Cancelled: {
		Name:     "order_cancelled",
		Subject:  "Order {{orderID}} cancelled",
		Body:     "Hi,\n\nYour order {{orderID}} has been cancelled ({{reason}}). Any payment taken will be returned to you.\n\nNVRSTL",
		SMSBody:  "NVRSTL: order {{orderID}} cancelled.",
		Critical: true,
	},
	order.Refunded: {
		Name:     "order_refunded",
		Subject:  "Refund issued for order {{orderID}}",
		Body:     "Hi,\n\nWe've issued a refund of {{total}} for order {{orderID}}. It should reach your account within 5 working days.\n\nNVRSTL",
		SMSBody:  "NVRSTL: refund of {{total}} issued for order {{orderID}}.",
		Critical: true,
	},
}

// TemplateFor returns the template for transitions landing on status.
func TemplateFor(status order.Status) (Template, bool) {
	tpl, ok := defaultTemplates[status]
	return tpl, ok
}
