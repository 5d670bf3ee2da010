package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/notify"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageSender struct{ mock.Mock }

func (m *MockMessageSender) Send(ctx context.Context, msg ports.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockInAppNotifier struct{ mock.Mock }

func (m *MockInAppNotifier) Notify(ctx context.Context, userID kernel.UUID, subject, body string) error {
	args := m.Called(ctx, userID, subject, body)
	return args.Error(0)
}

type MockEventAppender struct{ mock.Mock }

func (m *MockEventAppender) Append(ctx context.Context, event *orderevent.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeSnapshot(t *testing.T, userID *kernel.UUID, phone string, from, to order.Status) commands.TransitionSnapshot {
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

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), userID, "jo@example.com", phone,
		totals, []order.Item{item}, to,
		time.Now().UTC().Add(-time.Hour),
		nil, nil, nil, nil, nil,
	)
	require.NoError(t, err)

	return commands.TransitionSnapshot{
		OrderID:    aggregate.ID(),
		Order:      aggregate,
		From:       from,
		To:         to,
		Reason:     "test transition",
		ActorID:    "admin:jo",
		OccurredAt: time.Now().UTC(),
	}
}

func eventOfKind(kind orderevent.Kind) any {
	return mock.MatchedBy(func(e *orderevent.Event) bool {
		return e.Kind() == kind
	})
}

func TestDispatcher_AfterTransition(t *testing.T) {
	t.Run("should email guest orders only", func(t *testing.T) {
		email := &MockMessageSender{}
		sms := &MockMessageSender{}
		inApp := &MockInAppNotifier{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, sms, inApp, events, "ops@nvrstl.example", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Pending, order.Paid)

		email.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.Message) bool {
			return msg.To == "jo@example.com" && msg.Subject != "" && msg.Text != ""
		})).Return(nil).Once()
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindNotificationSent)).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertExpectations(t)
		events.AssertExpectations(t)
		inApp.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("should add in-app and sms channels when owner and phone exist", func(t *testing.T) {
		email := &MockMessageSender{}
		sms := &MockMessageSender{}
		inApp := &MockInAppNotifier{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, sms, inApp, events, "", discardLogger())

		owner := kernel.NewUUID()
		snap := makeSnapshot(t, &owner, "+447700900123", order.Fulfilling, order.Shipped)
		snap.TrackingNumber = "TRK123456789"
		snap.Carrier = "royal-mail"

		email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		inApp.On("Notify", mock.Anything, owner, mock.Anything, mock.Anything).Return(nil).Once()
		sms.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.Message) bool {
			return msg.To == "+447700900123" && msg.Subject == ""
		})).Return(nil).Once()
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindNotificationSent)).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertExpectations(t)
		inApp.AssertExpectations(t)
		sms.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("should substitute tracking details into shipped messages", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Fulfilling, order.Shipped)
		snap.TrackingNumber = "TRK123456789"
		snap.Carrier = "royal-mail"

		var sent ports.Message
		email.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(1).(ports.Message)
		}).Return(nil).Once()
		events.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		assert.Contains(t, sent.Text, "TRK123456789")
		assert.Contains(t, sent.Text, "royal-mail")
		assert.NotContains(t, sent.Text, "{{")
	})

	t.Run("should retry a failing channel once", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Pending, order.Paid)

		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp timeout")).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindNotificationSent)).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertExpectations(t)
	})

	t.Run("should record failure and alert admin when all channels fail on a critical template", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "ops@nvrstl.example", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Paid, order.Cancelled)

		customer := mock.MatchedBy(func(msg ports.Message) bool { return msg.To == "jo@example.com" })
		admin := mock.MatchedBy(func(msg ports.Message) bool { return msg.To == "ops@nvrstl.example" })

		email.On("Send", mock.Anything, customer).Return(errors.New("smtp down")).Twice()
		email.On("Send", mock.Anything, admin).Return(nil).Once()
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindNotificationError)).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("should not alert admin for routine templates", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "ops@nvrstl.example", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Pending, order.Paid)

		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Twice()
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindNotificationError)).Return(nil).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("should stay silent for statuses without a template", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Paid, order.Fulfilling)

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("should swallow event log failures", func(t *testing.T) {
		email := &MockMessageSender{}
		events := &MockEventAppender{}
		dispatcher := notify.NewDispatcher(email, nil, nil, events, "", discardLogger())

		snap := makeSnapshot(t, nil, "", order.Pending, order.Paid)

		email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		events.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		err := dispatcher.AfterTransition(t.Context(), snap)

		require.NoError(t, err)
	})
}
