package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderEventRepository struct{ mock.Mock }

func (m *MockOrderEventRepository) Append(ctx context.Context, event *orderevent.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderEventRepository) HistoryByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderevent.Event), args.Error(1)
}

func (m *MockOrderEventRepository) HistoryChronological(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderevent.Event), args.Error(1)
}

func (m *MockOrderEventRepository) CriticalSince(ctx context.Context, since time.Time) ([]*orderevent.Event, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderevent.Event), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockTransitionUoW struct{ mock.Mock }

func (m *MockTransitionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockTransitionUoW) OrderEventRepository() ports.OrderEventRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderEventRepository)
}

func (m *MockTransitionUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockRestorer struct{ mock.Mock }

func (m *MockStockRestorer) RestoreStock(
	ctx context.Context,
	orderID kernel.UUID,
	reason string,
) (ports.StockRestoreResult, error) {
	args := m.Called(ctx, orderID, reason)
	return args.Get(0).(ports.StockRestoreResult), args.Error(1)
}

type MockCarrier struct{ mock.Mock }

func (m *MockCarrier) CreateLabel(ctx context.Context, req ports.LabelRequest) (ports.Label, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Label), args.Error(1)
}

func (m *MockCarrier) Track(ctx context.Context, trackingNumber, carrier string) (ports.TrackingUpdate, error) {
	args := m.Called(ctx, trackingNumber, carrier)
	return args.Get(0).(ports.TrackingUpdate), args.Error(1)
}

func mustMoney(t *testing.T, pence int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(pence)
	require.NoError(t, err)
	return m
}

func makeOrder(t *testing.T, status order.Status, totalPence int64) *order.Order {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(),
		"Oversized Hoodie", "M",
		1, mustMoney(t, totalPence),
	)
	require.NoError(t, err)

	zero := mustMoney(t, 0)
	totals, err := order.NewTotals(mustMoney(t, totalPence), zero, zero, zero, mustMoney(t, totalPence))
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), nil,
		"jo@example.com", "+447700900123",
		totals, []order.Item{item}, status,
		time.Now().UTC().Add(-time.Hour),
		nil, nil, nil, nil, nil,
	)
	require.NoError(t, err)
	return o
}

func makeShipment(t *testing.T, orderID kernel.UUID, status shipment.TrackingStatus) *shipment.Shipment {
	t.Helper()

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), orderID,
		"TRK123456789", "royal-mail", "Tracked 24",
		mustMoney(t, 399), status,
		nil, nil,
		time.Now().UTC().Add(-time.Hour),
	)
	require.NoError(t, err)
	return s
}

func eventOfKind(kind orderevent.Kind) any {
	return mock.MatchedBy(func(e *orderevent.Event) bool {
		return e.Kind() == kind
	})
}
