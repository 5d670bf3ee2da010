package realtime_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu     sync.Mutex
	events []realtime.Event
	err    error
}

func (c *recordingConn) Write(event realtime.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func (c *recordingConn) received() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Event(nil), c.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reentrantConn calls back into the hub from inside Write. It deadlocks if
// Broadcast writes while holding the registry lock.
type reentrantConn struct {
	hub            *realtime.Hub
	lenDuringWrite int
}

func (c *reentrantConn) Write(realtime.Event) error {
	c.lenDuringWrite = c.hub.Len()
	return nil
}

func TestHub_Broadcast(t *testing.T) {
	t.Run("should deliver user-scoped events to that user and admins only", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		alice := &recordingConn{}
		bob := &recordingConn{}
		admin := &recordingConn{}
		hub.Register("conn-alice", "user-alice", alice)
		hub.Register("conn-bob", "user-bob", bob)
		hub.Register("conn-admin", "", admin)

		hub.Broadcast(realtime.Event{Type: "order.status_changed", UserID: "user-alice", Status: "PAID"})

		assert.Len(t, alice.received(), 1)
		assert.Empty(t, bob.received())
		assert.Len(t, admin.received(), 1)
	})

	t.Run("should deliver unscoped events to admin listeners only", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		alice := &recordingConn{}
		admin := &recordingConn{}
		hub.Register("conn-alice", "user-alice", alice)
		hub.Register("conn-admin", "", admin)

		hub.Broadcast(realtime.Event{Type: "order.status_changed", Status: "SHIPPED"})

		assert.Empty(t, alice.received())
		assert.Len(t, admin.received(), 1)
	})

	t.Run("should prune connections whose write fails", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		healthy := &recordingConn{}
		broken := &recordingConn{err: errors.New("client gone")}
		hub.Register("conn-healthy", "", healthy)
		hub.Register("conn-broken", "", broken)
		require.Equal(t, 2, hub.Len())

		hub.Broadcast(realtime.Event{Type: "order.status_changed", Status: "PAID"})

		assert.Equal(t, 1, hub.Len())
		assert.Len(t, healthy.received(), 1)

		hub.Broadcast(realtime.Event{Type: "order.status_changed", Status: "SHIPPED"})
		assert.Len(t, healthy.received(), 2)
	})

	t.Run("should replace a connection registered under the same id", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		first := &recordingConn{}
		second := &recordingConn{}
		hub.Register("conn-1", "", first)
		hub.Register("conn-1", "", second)

		hub.Broadcast(realtime.Event{Type: "order.status_changed"})

		assert.Equal(t, 1, hub.Len())
		assert.Empty(t, first.received())
		assert.Len(t, second.received(), 1)
	})

	t.Run("should not hold the registry lock during writes", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		conn := &reentrantConn{hub: hub}
		hub.Register("conn-reentrant", "", conn)

		hub.Broadcast(realtime.Event{Type: "order.status_changed", Status: "PAID"})

		assert.Equal(t, 1, conn.lenDuringWrite)
	})

	t.Run("should tolerate concurrent register, broadcast and unregister", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				id := string(rune('a' + n))
				hub.Register(id, "", &recordingConn{})
				hub.Broadcast(realtime.Event{Type: "order.status_changed"})
				hub.Unregister(id)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 0, hub.Len())
	})
}

func TestHub_Notify(t *testing.T) {
	t.Run("should deliver in-app notifications to the addressed user", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		userID := kernel.NewUUID()
		owner := &recordingConn{}
		other := &recordingConn{}
		hub.Register("conn-owner", userID.String(), owner)
		hub.Register("conn-other", "someone-else", other)

		err := hub.Notify(t.Context(), userID, "Order confirmed", "Thanks for your order!")

		require.NoError(t, err)
		events := owner.received()
		require.Len(t, events, 1)
		assert.Equal(t, "notification", events[0].Type)
		assert.Equal(t, "Order confirmed", events[0].Subject)
		assert.Empty(t, other.received())
	})

	t.Run("should not fail with zero connections", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())

		err := hub.Notify(t.Context(), kernel.NewUUID(), "subject", "body")

		require.NoError(t, err)
	})
}

func buildOrder(t *testing.T, userID *kernel.UUID) *order.Order {
	t.Helper()

	unitPrice, err := kernel.NewMoney(2500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Boxy Tee", "L", 2, unitPrice)
	require.NoError(t, err)
	zero, err := kernel.NewMoney(0)
	require.NoError(t, err)
	total, err := kernel.NewMoney(5000)
	require.NoError(t, err)
	totals, err := order.NewTotals(total, zero, zero, zero, total)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), userID, "jo@example.com", "",
		totals, []order.Item{item}, time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func snapshotFor(aggregate *order.Order, from, to order.Status) commands.TransitionSnapshot {
	return commands.TransitionSnapshot{
		OrderID:    aggregate.ID(),
		Order:      aggregate,
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	}
}

func TestStatusBroadcastHook_AfterTransition(t *testing.T) {
	t.Run("should scope the broadcast to the order owner", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		hook := realtime.NewStatusBroadcastHook(hub)

		owner := kernel.NewUUID()
		aggregate := buildOrder(t, &owner)
		conn := &recordingConn{}
		hub.Register("conn-owner", owner.String(), conn)

		snap := snapshotFor(aggregate, order.Pending, order.Paid)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		events := conn.received()
		require.Len(t, events, 1)
		assert.Equal(t, "order.status_changed", events[0].Type)
		assert.Equal(t, aggregate.ID().String(), events[0].OrderID)
		assert.Equal(t, "PAID", events[0].Status)
	})

	t.Run("should leave guest order events unscoped", func(t *testing.T) {
		hub := realtime.NewHub(discardLogger())
		hook := realtime.NewStatusBroadcastHook(hub)

		aggregate := buildOrder(t, nil)
		admin := &recordingConn{}
		stranger := &recordingConn{}
		hub.Register("conn-admin", "", admin)
		hub.Register("conn-stranger", "user-stranger", stranger)

		snap := snapshotFor(aggregate, order.Fulfilling, order.Shipped)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		assert.Len(t, admin.received(), 1)
		assert.Empty(t, stranger.received())
	})
}
