package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	owner      user.Principal
	restaurant *restaurant.Restaurant
	courier    *user.User
}

func newDispatchFixture(t *testing.T) dispatchFixture {
	t.Helper()
	ownerID := kernel.NewUUID()
	owner, err := user.NewPrincipal(ownerID, user.Owner)
	require.NoError(t, err)

	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Diner")
	require.NoError(t, err)

	c, err := user.NewUser(kernel.NewUUID(), "Courier", "", "", user.Courier, user.Active)
	require.NoError(t, err)

	return dispatchFixture{owner: owner, restaurant: r, courier: c}
}

func (f dispatchFixture) order(t *testing.T, orderType order.Type, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, "", decimal.NewFromInt(10))
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), f.restaurant.ID(), orderType, status,
		decimal.NewFromInt(10), []order.Item{item}, time.Now())
	require.NoError(t, err)
	return o
}

func TestDeliveryDispatcher_AuthorizeAssignment(t *testing.T) {
	f := newDispatchFixture(t)
	dispatcher := services.NewDeliveryDispatcher()

	t.Run("owner of a ready delivery order", func(t *testing.T) {
		assert.NoError(t, dispatcher.AuthorizeAssignment(f.owner, f.order(t, order.Delivery, order.Ready), f.restaurant))
	})

	t.Run("another owner", func(t *testing.T) {
		other, _ := user.NewPrincipal(kernel.NewUUID(), user.Owner)
		err := dispatcher.AuthorizeAssignment(other, f.order(t, order.Delivery, order.Ready), f.restaurant)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("customer role", func(t *testing.T) {
		customer, _ := user.NewPrincipal(f.owner.UserID, user.Customer)
		err := dispatcher.AuthorizeAssignment(customer, f.order(t, order.Delivery, order.Ready), f.restaurant)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("ownership is checked before state", func(t *testing.T) {
		other, _ := user.NewPrincipal(kernel.NewUUID(), user.Owner)
		err := dispatcher.AuthorizeAssignment(other, f.order(t, order.Pickup, order.Pending), f.restaurant)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("not ready", func(t *testing.T) {
		err := dispatcher.AuthorizeAssignment(f.owner, f.order(t, order.Delivery, order.Preparing), f.restaurant)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("ready pickup order", func(t *testing.T) {
		err := dispatcher.AuthorizeAssignment(f.owner, f.order(t, order.Pickup, order.Ready), f.restaurant)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestDeliveryDispatcher_Assign(t *testing.T) {
	f := newDispatchFixture(t)
	dispatcher := services.NewDeliveryDispatcher()
	now := time.Now()

	t.Run("creates pending delivery and starts the order", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Ready)

		d, err := dispatcher.Assign(o, f.courier, now)

		require.NoError(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.True(t, d.OrderID().IsEqual(o.ID()))
		assert.True(t, d.IsAssignedTo(f.courier.ID()))
		assert.Equal(t, order.Delivering, o.Status())
	})

	t.Run("inactive courier leaves the order untouched", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Ready)
		inactive, _ := user.NewUser(kernel.NewUUID(), "Off", "", "", user.Courier, user.Inactive)

		d, err := dispatcher.Assign(o, inactive, now)

		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("user without courier role", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Ready)
		customer, _ := user.NewUser(kernel.NewUUID(), "Cust", "", "", user.Customer, user.Active)

		_, err := dispatcher.Assign(o, customer, now)
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	})
}

func TestDeliveryDispatcher_Reassign(t *testing.T) {
	f := newDispatchFixture(t)
	dispatcher := services.NewDeliveryDispatcher()
	now := time.Now()

	newDelivery := func(status delivery.Status) *delivery.Delivery {
		d, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), status, nil, now.Add(-time.Minute), nil)
		require.NoError(t, err)
		return d
	}

	t.Run("owner may reassign", func(t *testing.T) {
		require.NoError(t, dispatcher.AuthorizeReassignment(f.owner, f.restaurant))

		d := newDelivery(delivery.OnRoute)
		require.NoError(t, dispatcher.Reassign(d, f.courier, now))
		assert.True(t, d.IsAssignedTo(f.courier.ID()))
		assert.Equal(t, delivery.Pending, d.Status())
	})

	t.Run("foreign owner is denied", func(t *testing.T) {
		other, _ := user.NewPrincipal(kernel.NewUUID(), user.Owner)
		assert.ErrorIs(t, dispatcher.AuthorizeReassignment(other, f.restaurant), errs.ErrPermissionDenied)
	})

	t.Run("inactive courier", func(t *testing.T) {
		inactive, _ := user.NewUser(kernel.NewUUID(), "Off", "", "", user.Courier, user.Inactive)
		d := newDelivery(delivery.Pending)
		previous := d.CourierID()

		assert.ErrorIs(t, dispatcher.Reassign(d, inactive, now), errs.ErrValueIsInvalid)
		assert.True(t, d.IsAssignedTo(previous))
	})

	t.Run("delivered delivery", func(t *testing.T) {
		assert.ErrorIs(t, dispatcher.Reassign(newDelivery(delivery.Delivered), f.courier, now), errs.ErrInvalidState)
	})
}

func TestDeliveryDispatcher_ValidateOverride(t *testing.T) {
	f := newDispatchFixture(t)
	dispatcher := services.NewDeliveryDispatcher()

	withDelivery := func(o *order.Order, status delivery.Status) *delivery.Delivery {
		d, err := delivery.RestoreDelivery(kernel.NewUUID(), o.ID(), f.courier.ID(), status, nil, time.Now(), nil)
		require.NoError(t, err)
		return d
	}

	t.Run("pickup order without delivery", func(t *testing.T) {
		o := f.order(t, order.Pickup, order.Ready)
		assert.NoError(t, dispatcher.ValidateOverride(o, order.Delivered, nil))
		assert.NoError(t, dispatcher.ValidateOverride(o, order.Cancelled, nil))
	})

	t.Run("delivery order cannot be delivered without a courier report", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Ready)
		assert.ErrorIs(t, dispatcher.ValidateOverride(o, order.Delivered, nil), errs.ErrInvalidState)

		o = f.order(t, order.Delivery, order.Delivering)
		assert.ErrorIs(t, dispatcher.ValidateOverride(o, order.Delivered, withDelivery(o, delivery.OnRoute)), errs.ErrInvalidState)
	})

	t.Run("delivered delivery pins the order to delivered", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Delivered)
		d := withDelivery(o, delivery.Delivered)

		err := dispatcher.ValidateOverride(o, order.Preparing, d)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "must stay delivered")
		assert.NoError(t, dispatcher.ValidateOverride(o, order.Delivered, d))
	})

	t.Run("unfinished delivery allows other targets", func(t *testing.T) {
		o := f.order(t, order.Delivery, order.Delivering)
		assert.NoError(t, dispatcher.ValidateOverride(o, order.Cancelled, withDelivery(o, delivery.Pending)))
	})
}
