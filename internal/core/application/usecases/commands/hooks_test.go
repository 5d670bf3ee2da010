package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/services"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type panickyHook struct{}

func (panickyHook) Name() string { return "panicky" }

func (panickyHook) AfterTransition(context.Context, commands.TransitionSnapshot) error {
	panic("boom")
}

func snapshotFor(t *testing.T, from, to order.Status) commands.TransitionSnapshot {
	t.Helper()
	aggregate := makeOrder(t, to, 4999)
	return commands.TransitionSnapshot{
		OrderID:    aggregate.ID(),
		Order:      aggregate,
		From:       from,
		To:         to,
		Reason:     "test",
		OccurredAt: time.Now().UTC(),
	}
}

func TestHookRunner_Run_SurvivesPanicAndRunsOthers(t *testing.T) {
	hook := new(recordingHook)
	runner := commands.NewHookRunner(discardLogger(), panickyHook{}, hook)

	runner.Run(t.Context(), snapshotFor(t, order.Paid, order.Fulfilling))

	require.Len(t, hook.recorded(), 1)
}

func TestStockCompensationHook_AfterTransition(t *testing.T) {
	t.Run("restores stock on cancellation", func(t *testing.T) {
		ctx := t.Context()
		snap := snapshotFor(t, order.Paid, order.Cancelled)

		stock := new(MockStockRestorer)
		stock.On("RestoreStock", mock.Anything, snap.OrderID, "test").
			Return(ports.StockRestoreResult{Success: true, RestoredItemCount: 1}, nil).Once()

		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindStockRestored)).Return(nil).Once()

		hook := commands.NewStockCompensationHook(stock, events)
		require.NoError(t, hook.AfterTransition(ctx, snap))

		stock.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("records critical event when restore fails", func(t *testing.T) {
		ctx := t.Context()
		snap := snapshotFor(t, order.Fulfilling, order.Cancelled)

		stock := new(MockStockRestorer)
		stock.On("RestoreStock", mock.Anything, snap.OrderID, "test").
			Return(ports.StockRestoreResult{}, errors.New("catalog unreachable")).Once()

		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindStockRestoreFailed)).Return(nil).Once()

		hook := commands.NewStockCompensationHook(stock, events)
		err := hook.AfterTransition(ctx, snap)
		require.Error(t, err)

		events.AssertExpectations(t)
	})

	t.Run("ignores other transitions", func(t *testing.T) {
		snap := snapshotFor(t, order.Pending, order.Paid)

		stock := new(MockStockRestorer)
		events := new(MockOrderEventRepository)

		hook := commands.NewStockCompensationHook(stock, events)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		stock.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
		events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestFulfillmentHook_AfterTransition(t *testing.T) {
	t.Run("plans picking work when fulfilment starts", func(t *testing.T) {
		snap := snapshotFor(t, order.Paid, order.Fulfilling)

		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindFulfillmentStarted)).Return(nil).Once()

		hook := commands.NewFulfillmentHook(services.NewFulfillmentPlanner(), events)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		events.AssertExpectations(t)
	})

	t.Run("ignores other transitions", func(t *testing.T) {
		snap := snapshotFor(t, order.Fulfilling, order.Shipped)

		events := new(MockOrderEventRepository)
		hook := commands.NewFulfillmentHook(services.NewFulfillmentPlanner(), events)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestShippingHook_AfterTransition(t *testing.T) {
	t.Run("creates shipment from request details", func(t *testing.T) {
		snap := snapshotFor(t, order.Fulfilling, order.Shipped)
		snap.TrackingNumber = "TRK123456789"
		snap.Carrier = "royal-mail"
		snap.Service = "Tracked 24"

		shipments := new(MockShipmentRepository)
		shipments.On("GetByOrder", mock.Anything, snap.OrderID).
			Return(nil, errs.NewObjectNotFoundError("shipment", snap.OrderID)).Once()
		shipments.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
			return s.TrackingNumber() == "TRK123456789" && s.Status() == shipment.LabelCreated
		})).Return(nil).Once()

		eta := time.Now().UTC().Add(48 * time.Hour)
		carrier := new(MockCarrier)
		carrier.On("CreateLabel", mock.Anything, mock.Anything).
			Return(ports.Label{TrackingNumber: "TRK123456789", Cost: mustMoney(t, 399), EstimatedDelivery: &eta}, nil).Once()

		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindShippingProcessed)).Return(nil).Once()

		hook := commands.NewShippingHook(shipments, carrier, events)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		shipments.AssertExpectations(t)
		carrier.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("reuses existing shipment", func(t *testing.T) {
		snap := snapshotFor(t, order.Fulfilling, order.Shipped)
		existing := makeShipment(t, snap.OrderID, shipment.LabelCreated)

		shipments := new(MockShipmentRepository)
		shipments.On("GetByOrder", mock.Anything, snap.OrderID).Return(existing, nil).Once()

		carrier := new(MockCarrier)
		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindShippingProcessed)).Return(nil).Once()

		hook := commands.NewShippingHook(shipments, carrier, events)
		require.NoError(t, hook.AfterTransition(t.Context(), snap))

		shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		carrier.AssertNotCalled(t, "CreateLabel", mock.Anything, mock.Anything)
		events.AssertExpectations(t)
	})

	t.Run("still registers shipment when label pricing fails", func(t *testing.T) {
		snap := snapshotFor(t, order.Fulfilling, order.Shipped)
		snap.TrackingNumber = "TRK123456789"
		snap.Carrier = "royal-mail"

		shipments := new(MockShipmentRepository)
		shipments.On("GetByOrder", mock.Anything, snap.OrderID).
			Return(nil, errs.NewObjectNotFoundError("shipment", snap.OrderID)).Once()
		shipments.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
			return s.Cost().IsZero()
		})).Return(nil).Once()

		carrier := new(MockCarrier)
		carrier.On("CreateLabel", mock.Anything, mock.Anything).
			Return(ports.Label{}, errors.New("carrier api down")).Once()

		events := new(MockOrderEventRepository)
		events.On("Append", mock.Anything, eventOfKind(orderevent.KindShippingProcessed)).Return(nil).Once()

		hook := commands.NewShippingHook(shipments, carrier, events)
		err := hook.AfterTransition(t.Context(), snap)
		require.Error(t, err)

		shipments.AssertExpectations(t)
		events.AssertExpectations(t)
	})
}

func TestDeliveryHook_AfterTransition(t *testing.T) {
	snap := snapshotFor(t, order.Shipped, order.Delivered)

	events := new(MockOrderEventRepository)
	events.On("Append", mock.Anything, eventOfKind(orderevent.KindDeliveryConfirmed)).Return(nil).Once()

	hook := commands.NewDeliveryHook(events)
	require.NoError(t, hook.AfterTransition(t.Context(), snap))

	events.AssertExpectations(t)

	other := snapshotFor(t, order.Pending, order.Paid)
	require.NoError(t, hook.AfterTransition(t.Context(), other))
	assert.Len(t, events.Calls, 1)
}
