package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending, order.Confirmed, order.Preparing, order.Ready,
		order.Delivering, order.Delivered, order.Cancelled, order.Rejected,
	}
}

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, order.Status(0), order.Unknown)
	assert.NotEqual(t, order.Pending, order.Unknown)
}

func TestStatus_StringAndParse(t *testing.T) {
	names := map[order.Status]string{
		order.Pending:    "pending",
		order.Confirmed:  "confirmed",
		order.Preparing:  "preparing",
		order.Ready:      "ready",
		order.Delivering: "delivering",
		order.Delivered:  "delivered",
		order.Cancelled:  "cancelled",
		order.Rejected:   "rejected",
	}

	for status, name := range names {
		assert.Equal(t, name, status.String())

		parsed, err := order.ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, in := range []string{"", "unknown", "Pending", "on_route", "3"} {
		_, err := order.ParseStatus(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses() {
		assert.NoError(t, s.Validate())
	}
	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(-1).Validate())
	assert.Error(t, order.Status(42).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{order.Delivered: true, order.Cancelled: true, order.Rejected: true}
	for _, s := range allStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), s.String())
	}
}

func TestStatus_ValidateTransition(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Confirmed, order.Cancelled, order.Rejected},
		order.Confirmed: {order.Preparing, order.Cancelled, order.Rejected},
		order.Preparing: {order.Ready, order.Cancelled},
		order.Ready:     {order.Delivered},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			err := from.ValidateTransition(to, order.Pickup)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				require.Error(t, err, "%s -> %s", from, to)
				assert.ErrorIs(t, err, errs.ErrInvalidState, "%s -> %s", from, to)
			}
		}
	}
}

func TestStatus_ValidateTransition_DeliveryOrders(t *testing.T) {
	t.Run("ready delivery order cannot be completed by the operator", func(t *testing.T) {
		err := order.Ready.ValidateTransition(order.Delivered, order.Delivery)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("dine in order can be completed from ready", func(t *testing.T) {
		assert.NoError(t, order.Ready.ValidateTransition(order.Delivered, order.DineIn))
	})

	t.Run("delivering is never an operator target", func(t *testing.T) {
		err := order.Ready.ValidateTransition(order.Delivering, order.Delivery)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assigning a courier")
	})

	t.Run("invalid target is invalid input", func(t *testing.T) {
		err := order.Pending.ValidateTransition(order.Unknown, order.Delivery)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestType_StringAndParse(t *testing.T) {
	for typ, name := range map[order.Type]string{order.Pickup: "pickup", order.Delivery: "delivery", order.DineIn: "dine_in"} {
		assert.Equal(t, name, typ.String())
		parsed, err := order.ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := order.ParseType("drive_through")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Error(t, order.TypeUnknown.Validate())
}
