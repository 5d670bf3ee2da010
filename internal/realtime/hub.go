// Package realtime pushes order status updates to connected storefront and
// admin clients. The hub is a process-local, best-effort fan-out: it improves
// perceived latency of an open UI and guarantees nothing. The event log is
// the system of record.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
)

// Event is one message fanned out to clients. A UserID scopes the event to
// that user's connections plus unscoped (admin) listeners; an event without
// a UserID reaches unscoped listeners only.
type Event struct {
	Type    string    `json:"type"`
	OrderID string    `json:"orderId,omitempty"`
	UserID  string    `json:"-"`
	Status  string    `json:"status,omitempty"`
	Subject string    `json:"subject,omitempty"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// Conn is one client connection. Write must be safe to call from the hub's
// broadcasting goroutine; a write error drops the connection.
type Conn interface {
	Write(event Event) error
}

type subscription struct {
	conn Conn
	// userID scopes the subscription; empty means an unscoped (admin)
	// listener that receives everything.
	userID string
}

// Hub is the connection registry. Registry access goes through one mutex;
// connection writes happen outside it. The registry is small (open browser
// tabs, not a message broker).
type Hub struct {
	mu     sync.Mutex
	conns  map[string]subscription
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]subscription),
		logger: logger.With("component", "realtime-hub"),
	}
}

// Register adds a connection under an opaque id. userID may be empty for
// unscoped listeners. Re-registering an id replaces the previous connection.
func (h *Hub) Register(id, userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = subscription{conn: conn, userID: userID}
}

// Unregister removes a connection. Unknown ids are a no-op; clients
// disconnect and prune races are expected.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast delivers an event to every matching connection and prunes
// connections whose write fails. Matching connections are snapshotted under
// the lock and written to outside it, so one slow client cannot stall
// registrations or other broadcasts.
func (h *Hub) Broadcast(event Event) {
	type target struct {
		id   string
		conn Conn
	}

	h.mu.Lock()
	targets := make([]target, 0, len(h.conns))
	for id, sub := range h.conns {
		if matches(sub, event) {
			targets = append(targets, target{id: id, conn: sub.conn})
		}
	}
	h.mu.Unlock()

	var failed []target
	for _, t := range targets {
		if err := t.conn.Write(event); err != nil {
			h.logger.Debug("dropping connection after failed write",
				"connectionId", t.id, "error", err)
			failed = append(failed, t)
		}
	}
	if len(failed) == 0 {
		return
	}

	h.mu.Lock()
	for _, t := range failed {
		// The id may have been re-registered while writing; drop only the
		// connection that actually failed.
		if current, ok := h.conns[t.id]; ok && current.conn == t.conn {
			delete(h.conns, t.id)
		}
	}
	h.mu.Unlock()
}

// matches reports whether a subscription should receive an event. Unscoped
// listeners see everything; user connections only see their own events.
func matches(sub subscription, event Event) bool {
	if sub.userID == "" {
		return true
	}
	return event.UserID == sub.userID
}

// Notify delivers an in-app notification to one user's connections. It
// satisfies the notification dispatcher's in-app channel; delivery to zero
// connections is not an error.
func (h *Hub) Notify(_ context.Context, userID kernel.UUID, subject, body string) error {
	h.Broadcast(Event{
		Type:    "notification",
		UserID:  userID.String(),
		Subject: subject,
		Message: body,
		At:      time.Now().UTC(),
	})
	return nil
}
