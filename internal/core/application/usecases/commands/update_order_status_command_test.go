package commands_test

import (
	"context"

	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := principal(t, user.Owner)
		id := kernel.NewUUID()
		cmd, err := commands.NewUpdateOrderStatusCommand(p, id, "confirmed", false)
		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, order.Confirmed, cmd.Status())
		assert.False(t, cmd.Override())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Owner), kernel.NewUUID(), "lost", false)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Owner), kernel.UUID{}, "ready", false)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

type statusChangeFixture struct {
	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	deliveries  *MockDeliveryRepository
	uow         *MockUoW
	factory     *MockOrderUoWFactory
}

func newStatusChangeFixture(t *testing.T, o *order.Order, ownerID kernel.UUID) statusChangeFixture {
	t.Helper()
	ctx := context.Background()
	f := statusChangeFixture{
		orders:      new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		deliveries:  new(MockDeliveryRepository),
		uow:         new(MockUoW),
		factory:     new(MockOrderUoWFactory),
	}
	r, err := restaurantWithID(o.RestaurantID(), ownerID)
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.uow.On("RestaurantRepository").Return(f.restaurants).Once()
	f.uow.On("DeliveryRepository").Return(f.deliveries).Maybe()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.restaurants.On("Get", ctx, o.RestaurantID()).Return(r, nil).Once()
	return f
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("owner confirms a pending order", func(t *testing.T) {
		ctx := context.Background()
		owner := principal(t, user.Owner)
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Pending)
		f := newStatusChangeFixture(t, o, owner.UserID)
		f.orders.On("UpdateStatus", ctx, o, order.Pending).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "confirmed", false)
		require.NoError(t, err)

		updated, err := commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, updated.Status())
		f.orders.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("owner of another restaurant", func(t *testing.T) {
		ctx := context.Background()
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Pending)
		f := newStatusChangeFixture(t, o, kernel.NewUUID())

		cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Owner), o.ID(), "confirmed", false)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("customer cannot change status", func(t *testing.T) {
		ctx := context.Background()
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Pending)
		f := newStatusChangeFixture(t, o, kernel.NewUUID())

		cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Customer), o.ID(), "cancelled", false)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
	})

	t.Run("illegal transition", func(t *testing.T) {
		ctx := context.Background()
		owner := principal(t, user.Owner)
		o := restoreOrder(t, kernel.NewUUID(), order.Delivery, order.Ready)
		f := newStatusChangeFixture(t, o, owner.UserID)

		cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "delivered", false)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("owner cannot override", func(t *testing.T) {
		ctx := context.Background()
		owner := principal(t, user.Owner)
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Delivered)
		f := newStatusChangeFixture(t, o, owner.UserID)

		cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "preparing", true)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
	})

	t.Run("admin override bypasses the table", func(t *testing.T) {
		ctx := context.Background()
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Delivered)
		f := newStatusChangeFixture(t, o, kernel.NewUUID())
		f.deliveries.On("GetByOrder", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("delivery for order", o.ID())).Once()
		f.orders.On("UpdateStatus", ctx, o, order.Delivered).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Admin), o.ID(), "preparing", true)
		require.NoError(t, err)

		updated, err := commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, updated.Status())
		f.deliveries.AssertExpectations(t)
	})

	overrideTests := []struct {
		name           string
		orderStatus    order.Status
		deliveryStatus *delivery.Status
		target         string
		wantErr        bool
	}{
		{name: "delivering without a courier", orderStatus: order.Ready, target: "delivering", wantErr: true},
		{name: "delivered without a delivery", orderStatus: order.Ready, target: "delivered", wantErr: true},
		{name: "delivered while the courier is on route", orderStatus: order.Delivering,
			deliveryStatus: ptr(delivery.OnRoute), target: "delivered", wantErr: true},
		{name: "away from delivered after the courier delivered", orderStatus: order.Delivered,
			deliveryStatus: ptr(delivery.Delivered), target: "preparing", wantErr: true},
		{name: "cancel while the courier is on route", orderStatus: order.Delivering,
			deliveryStatus: ptr(delivery.OnRoute), target: "cancelled"},
		{name: "back to delivered after the courier delivered", orderStatus: order.Cancelled,
			deliveryStatus: ptr(delivery.Delivered), target: "delivered"},
	}

	for _, tt := range overrideTests {
		t.Run("override "+tt.name, func(t *testing.T) {
			ctx := context.Background()
			o := restoreOrder(t, kernel.NewUUID(), order.Delivery, tt.orderStatus)
			f := newStatusChangeFixture(t, o, kernel.NewUUID())
			if tt.deliveryStatus == nil {
				f.deliveries.On("GetByOrder", ctx, o.ID()).
					Return(nil, errs.NewObjectNotFoundError("delivery for order", o.ID())).Once()
			} else {
				d := restoreDelivery(t, o.ID(), kernel.NewUUID(), *tt.deliveryStatus, time.Now().UTC())
				f.deliveries.On("GetByOrder", ctx, o.ID()).Return(d, nil).Once()
			}
			if !tt.wantErr {
				f.orders.On("UpdateStatus", ctx, o, tt.orderStatus).Return(nil).Once()
				f.uow.On("Commit", ctx).Return(nil).Once()
			}

			cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Admin), o.ID(), tt.target, true)
			require.NoError(t, err)

			updated, err := commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
			if tt.wantErr {
				assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
				assert.Equal(t, tt.orderStatus, o.Status())
				f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				f.uow.AssertNotCalled(t, "Commit", ctx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.Status().String())
		})
	}

	t.Run("override fails when the delivery cannot be read", func(t *testing.T) {
		ctx := context.Background()
		o := restoreOrder(t, kernel.NewUUID(), order.Delivery, order.Delivering)
		f := newStatusChangeFixture(t, o, kernel.NewUUID())
		f.deliveries.On("GetByOrder", ctx, o.ID()).Return(nil, errors.New("connection reset")).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Admin), o.ID(), "cancelled", true)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.ErrorContains(t, err, "connection reset")
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("concurrent change loses", func(t *testing.T) {
		ctx := context.Background()
		owner := principal(t, user.Owner)
		o := restoreOrder(t, kernel.NewUUID(), order.Pickup, order.Pending)
		f := newStatusChangeFixture(t, o, owner.UserID)
		f.orders.On("UpdateStatus", ctx, o, order.Pending).Return(errs.ErrConcurrentModified).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "rejected", false)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("unknown order", func(t *testing.T) {
		ctx := context.Background()
		id := kernel.NewUUID()
		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order_id", id)).Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(principal(t, user.Admin), id, "confirmed", false)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderStatusCommandHandler(factory).Handle(ctx, cmd)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		uow.AssertExpectations(t)
	})
}

func ptr[T any](v T) *T { return &v }
