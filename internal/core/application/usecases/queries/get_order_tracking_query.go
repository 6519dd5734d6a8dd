package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery reads the live state of one order for tracking clients.
type GetOrderTrackingQuery struct {
	principal user.Principal
	orderID   kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(principal user.Principal, orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(principal.Validate(), idErr); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackingView is the order state polled by tracking clients.
// Delivery is nil until a courier is assigned.
type TrackingView struct {
	OrderID      kernel.UUID
	OrderStatus  string
	OrderType    string
	RestaurantID kernel.UUID
	Delivery     *TrackingDeliveryView
}

type TrackingDeliveryView struct {
	ID        kernel.UUID
	CourierID kernel.UUID
	Status    string
	Latitude  *float64
	Longitude *float64
	UpdatedAt time.Time
}
