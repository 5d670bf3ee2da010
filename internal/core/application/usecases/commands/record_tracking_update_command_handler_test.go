package commands_test

import (
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordTrackingUpdateCommandHandler_Handle_AppliesMilestone(t *testing.T) {
	ctx := t.Context()
	aggregate := makeOrder(t, order.Shipped, 4999)
	sh := makeShipment(t, aggregate.ID(), shipment.LabelCreated)

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		aggregate.ID(), shipment.InTransit, "departed sorting centre", time.Now().UTC(),
	)
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	events := new(MockOrderEventRepository)
	uow := new(MockTransitionUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipments)
	uow.On("OrderEventRepository").Return(events).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipments.On("GetByOrder", ctx, aggregate.ID()).Return(sh, nil).Once()
	shipments.On("Update", ctx, sh).Return(nil).Once()
	events.On("Append", ctx, eventOfKind(orderevent.KindTrackingUpdated)).Return(nil).Once()

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordTrackingUpdateCommandHandler(factory, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.InTransit, sh.Status())
	shipments.AssertExpectations(t)
	events.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordTrackingUpdateCommandHandler_Handle_DropsRepeatedScan(t *testing.T) {
	ctx := t.Context()
	aggregate := makeOrder(t, order.Shipped, 4999)
	sh := makeShipment(t, aggregate.ID(), shipment.InTransit)

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		aggregate.ID(), shipment.InTransit, "still in transit", time.Now().UTC(),
	)
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	uow := new(MockTransitionUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipments.On("GetByOrder", ctx, aggregate.ID()).Return(sh, nil).Once()

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordTrackingUpdateCommandHandler(factory, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRecordTrackingUpdateCommandHandler_Handle_OutOfSequenceMilestone(t *testing.T) {
	ctx := t.Context()
	aggregate := makeOrder(t, order.Shipped, 4999)
	sh := makeShipment(t, aggregate.ID(), shipment.TrackingDelivered)

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		aggregate.ID(), shipment.InTransit, "", time.Now().UTC(),
	)
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	uow := new(MockTransitionUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipments.On("GetByOrder", ctx, aggregate.ID()).Return(sh, nil).Once()

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordTrackingUpdateCommandHandler(factory, nil, discardLogger())
	require.Error(t, h.Handle(ctx, cmd))
}

func TestRecordTrackingUpdateCommandHandler_Handle_DeliveryAdvancesOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := makeOrder(t, order.Shipped, 4999)
	sh := makeShipment(t, aggregate.ID(), shipment.OutForDelivery)

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		aggregate.ID(), shipment.TrackingDelivered, "handed to resident", time.Now().UTC(),
	)
	require.NoError(t, err)

	// Tracking transaction.
	shipments := new(MockShipmentRepository)
	events := new(MockOrderEventRepository)
	trackingUoW := new(MockTransitionUoW)

	trackingUoW.On("Begin", ctx).Return(nil).Once()
	trackingUoW.On("ShipmentRepository").Return(shipments)
	trackingUoW.On("OrderEventRepository").Return(events).Once()
	trackingUoW.On("Commit", ctx).Return(nil).Once()
	trackingUoW.On("Rollback", ctx).Return(nil).Once()
	shipments.On("GetByOrder", ctx, aggregate.ID()).Return(sh, nil).Once()
	shipments.On("Update", ctx, sh).Return(nil).Once()
	events.On("Append", ctx, eventOfKind(orderevent.KindTrackingUpdated)).Return(nil).Once()

	// Follow-up DELIVERED transition, its own transaction.
	orderRepo := new(MockOrderRepository)
	transitionEvents := new(MockOrderEventRepository)
	transitionUoW := new(MockTransitionUoW)

	transitionUoW.On("Begin", ctx).Return(nil).Once()
	transitionUoW.On("OrderRepository").Return(orderRepo)
	transitionUoW.On("OrderEventRepository").Return(transitionEvents).Once()
	transitionUoW.On("Commit", ctx).Return(nil).Once()
	transitionUoW.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	transitionEvents.On("Append", ctx, eventOfKind(orderevent.KindStatusChanged)).Return(nil).Once()

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(trackingUoW).Once()
	factory.On("Create").Return(transitionUoW).Once()

	transitions := commands.NewRequestTransitionCommandHandler(
		factory, new(MockOrderEventRepository), nil, discardLogger(),
	)

	h := commands.NewRecordTrackingUpdateCommandHandler(factory, &transitions, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.TrackingDelivered, sh.Status())
	assert.NotNil(t, sh.DeliveredAt())
	assert.Equal(t, order.Delivered, aggregate.Status())
	assert.NotNil(t, aggregate.DeliveredAt())

	factory.AssertExpectations(t)
	transitionUoW.AssertExpectations(t)
}
