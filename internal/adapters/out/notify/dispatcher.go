package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// maxSendAttempts is how many times one channel is tried before it counts
// as failed for this dispatch.
const maxSendAttempts = 2

// Channel names recorded in the delivery outcome.
const (
	ChannelEmail = "email"
	ChannelInApp = "in-app"
	ChannelSMS   = "sms"
)

// Delivery statuses recorded in the dispatch event payload. A dispatch is
// SENT when at least one channel accepted the message and FAILED when none
// did; the remaining states are reserved for transports that report back.
const (
	DeliveryPending   = "PENDING"
	DeliverySent      = "SENT"
	DeliveryDelivered = "DELIVERED"
	DeliveryFailed    = "FAILED"
	DeliveryCancelled = "CANCELLED"
)

// InAppNotifier delivers a notification to a signed-in customer's active
// sessions. Guest orders have no owner and skip this channel.
type InAppNotifier interface {
	Notify(ctx context.Context, userID kernel.UUID, subject, body string) error
}

// channelOutcome is the per-channel result of one dispatch.
type channelOutcome struct {
	channel  string
	attempts int
	err      error
}

// Dispatcher sends customer notifications for committed status changes and
// records each dispatch outcome in the order event log. It never propagates
// failures: a lost notification must not surface as a transition error.
type Dispatcher struct {
	email      ports.MessageSender
	sms        ports.MessageSender
	inApp      InAppNotifier
	events     ports.EventAppender
	adminEmail string
	logger     *slog.Logger
}

// NewDispatcher creates a notification dispatcher. sms and inApp may be nil
// to disable those channels; adminEmail may be empty to disable admin alerts.
func NewDispatcher(
	email ports.MessageSender,
	sms ports.MessageSender,
	inApp InAppNotifier,
	events ports.EventAppender,
	adminEmail string,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		email:      email,
		sms:        sms,
		inApp:      inApp,
		events:     events,
		adminEmail: adminEmail,
		logger:     logger.With("component", "notification-dispatcher"),
	}
}

func (d *Dispatcher) Name() string {
	return "notifications"
}

// AfterTransition dispatches the notification mapped to the status the
// transition landed on. Statuses without a template are silent.
func (d *Dispatcher) AfterTransition(ctx context.Context, snap commands.TransitionSnapshot) error {
	tpl, ok := TemplateFor(snap.To)
	if !ok {
		return nil
	}

	vars := d.templateVars(snap)
	subject := Render(tpl.Subject, vars)
	body := Render(tpl.Body, vars)

	outcomes := []channelOutcome{
		d.sendEmail(ctx, snap.Order.Email(), subject, body),
	}

	if owner := snap.Order.Owner(); owner != nil && d.inApp != nil {
		outcomes = append(outcomes, d.sendInApp(ctx, *owner, subject, body))
	}

	if phone := snap.Order.Phone(); phone != "" && d.sms != nil {
		outcomes = append(outcomes, d.sendSMS(ctx, phone, Render(tpl.SMSBody, vars)))
	}

	delivery := DeliverySent
	if allFailed(outcomes) {
		delivery = DeliveryFailed
		if tpl.Critical {
			d.alertAdmin(ctx, snap, tpl, outcomes)
		}
	}

	d.recordOutcome(ctx, snap, tpl, outcomes, delivery)
	return nil
}

func (d *Dispatcher) templateVars(snap commands.TransitionSnapshot) map[string]string {
	vars := map[string]string{
		"orderID": snap.OrderID.String(),
		"status":  snap.To.String(),
		"total":   snap.Order.Totals().Total().String(),
		"reason":  snap.Reason,
	}
	if snap.TrackingNumber != "" {
		vars["trackingNumber"] = snap.TrackingNumber
	}
	if snap.Carrier != "" {
		vars["carrier"] = snap.Carrier
	}
	return vars
}

func (d *Dispatcher) sendEmail(ctx context.Context, to, subject, body string) channelOutcome {
	return d.attempt(ChannelEmail, func() error {
		return d.email.Send(ctx, ports.Message{To: to, Subject: subject, Text: body})
	})
}

func (d *Dispatcher) sendInApp(ctx context.Context, userID kernel.UUID, subject, body string) channelOutcome {
	return d.attempt(ChannelInApp, func() error {
		return d.inApp.Notify(ctx, userID, subject, body)
	})
}

func (d *Dispatcher) sendSMS(ctx context.Context, phone, body string) channelOutcome {
	return d.attempt(ChannelSMS, func() error {
		return d.sms.Send(ctx, ports.Message{To: phone, Text: body})
	})
}

// attempt retries a channel send once before giving up on that channel.
func (d *Dispatcher) attempt(channel string, send func() error) channelOutcome {
	outcome := channelOutcome{channel: channel}
	for outcome.attempts < maxSendAttempts {
		outcome.attempts++
		outcome.err = send()
		if outcome.err == nil {
			return outcome
		}
	}
	return outcome
}

func allFailed(outcomes []channelOutcome) bool {
	for _, o := range outcomes {
		if o.err == nil {
			return false
		}
	}
	return true
}

// alertAdmin raises a best-effort operator alert when a critical template
// could not be delivered on any channel.
func (d *Dispatcher) alertAdmin(ctx context.Context, snap commands.TransitionSnapshot, tpl Template, outcomes []channelOutcome) {
	if d.adminEmail == "" {
		return
	}

	msg := ports.Message{
		To:      d.adminEmail,
		Subject: fmt.Sprintf("[alert] %s notification undeliverable for order %s", tpl.Name, snap.OrderID),
		Text: fmt.Sprintf(
			"All channels failed for template %q on order %s (%s -> %s): %s",
			tpl.Name, snap.OrderID, snap.From, snap.To, joinErrors(outcomes),
		),
	}
	if err := d.email.Send(ctx, msg); err != nil {
		d.logger.ErrorContext(ctx, "admin alert failed",
			"orderId", snap.OrderID.String(),
			"template", tpl.Name,
			"error", err)
	}
}

// recordOutcome appends the dispatch result to the order's event log.
func (d *Dispatcher) recordOutcome(ctx context.Context, snap commands.TransitionSnapshot, tpl Template, outcomes []channelOutcome, delivery string) {
	kind := orderevent.KindNotificationSent
	message := fmt.Sprintf("notification %q sent", tpl.Name)
	if delivery == DeliveryFailed {
		kind = orderevent.KindNotificationError
		message = fmt.Sprintf("notification %q failed on all channels", tpl.Name)
	}

	payload := orderevent.NotificationPayload{
		Template: tpl.Name,
		Channels: channelNames(outcomes),
		Delivery: delivery,
		Error:    joinErrors(outcomes),
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(), snap.OrderID, kind, message, payload, time.Now().UTC(),
	)
	if err != nil {
		d.logger.ErrorContext(ctx, "building notification event failed",
			"orderId", snap.OrderID.String(), "error", err)
		return
	}

	if err := d.events.Append(ctx, event); err != nil {
		d.logger.WarnContext(ctx, "recording notification outcome failed",
			"orderId", snap.OrderID.String(), "error", err)
	}
}

func channelNames(outcomes []channelOutcome) []string {
	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		names = append(names, o.channel)
	}
	return names
}

func joinErrors(outcomes []channelOutcome) string {
	var parts []string
	for _, o := range outcomes {
		if o.err != nil {
			parts = append(parts, fmt.Sprintf("%s: %s", o.channel, o.err))
		}
	}
	return strings.Join(parts, "; ")
}
