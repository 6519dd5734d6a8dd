package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) ListStaleOnRoute(ctx context.Context, updatedBefore time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, updatedBefore)
	ds, _ := args.Get(0).([]*delivery.Delivery)
	return ds, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

func (m *MockRestaurantRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*restaurant.MenuItem)
	return item, args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockPositionCache struct{ mock.Mock }

func (m *MockPositionCache) Put(ctx context.Context, position ports.CachedPosition) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionCache) Get(ctx context.Context, orderID kernel.UUID) (ports.CachedPosition, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.CachedPosition), args.Bool(1), args.Error(2)
}

func principal(t *testing.T, role user.Role) user.Principal {
	t.Helper()
	p, err := user.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

func newRestaurant(t *testing.T, ownerID kernel.UUID) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Trattoria")
	require.NoError(t, err)
	return r
}

func newMenuItem(t *testing.T, restaurantID kernel.UUID, price string) *restaurant.MenuItem {
	t.Helper()
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), restaurantID, "Margherita", decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newCourier(t *testing.T, status user.Status) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Dana", "dana@example.com", "+100200300", user.Courier, status)
	require.NoError(t, err)
	return u
}

func restoreOrder(t *testing.T, restaurantID kernel.UUID, orderType order.Type, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), restaurantID, orderType, status,
		decimal.RequireFromString("10.00"), []order.Item{item}, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func restoreDelivery(t *testing.T, orderID, courierID kernel.UUID, status delivery.Status, updatedAt time.Time) *delivery.Delivery {
	t.Helper()
	d, err := delivery.RestoreDelivery(kernel.NewUUID(), orderID, courierID, status, nil, updatedAt, nil)
	require.NoError(t, err)
	return d
}

func restaurantWithID(id, ownerID kernel.UUID) (*restaurant.Restaurant, error) {
	return restaurant.NewRestaurant(id, ownerID, "Trattoria")
}
