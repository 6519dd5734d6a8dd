package services

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// DeliveryDispatcher is a domain service binding couriers to ready delivery orders.
//
// Assignment is split in two phases so the caller can load the courier only after
// the order has been authorized:
//
//	if err := dispatcher.AuthorizeAssignment(owner, o, r); err != nil { ... }      // PermissionDenied, InvalidState
//	courier, err := users.Get(ctx, courierID)                                      // NotFound
//	d, err := dispatcher.Assign(o, courier, now)                                   // InvalidInput
//
// Assign mutates the order (ready -> delivering) and returns the new Delivery; the
// caller must persist both in one transaction.
type DeliveryDispatcher struct{}

func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// AuthorizeAssignment checks that requester owns the order's restaurant and that the
// order is a delivery order in ready status.
func (DeliveryDispatcher) AuthorizeAssignment(requester user.Principal, o *order.Order, r *restaurant.Restaurant) error {
	if err := requireOwnerOf(requester, r, "assign delivery"); err != nil {
		return err
	}

	if !o.IsReadyForDelivery() {
		return errs.NewInvalidStateError("order status", o.Status().String()+" "+o.Type().String())
	}
	return nil
}

// Assign validates the courier, creates a pending Delivery and moves the order to delivering.
func (DeliveryDispatcher) Assign(o *order.Order, courier *user.User, now time.Time) (*delivery.Delivery, error) {
	if err := courier.ValidateAsCourier(); err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(kernel.NewUUID(), o.ID(), courier.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = o.StartDelivery(); err != nil {
		return nil, err
	}

	return d, nil
}

// AuthorizeReassignment checks that requester owns the restaurant of the delivery's order.
// The order status itself is not re-validated.
func (DeliveryDispatcher) AuthorizeReassignment(requester user.Principal, r *restaurant.Restaurant) error {
	return requireOwnerOf(requester, r, "reassign delivery")
}

// ValidateOverride checks that an admin override keeps the order and its delivery in
// step: a delivery order is delivered exactly when its delivery is. d is nil when no
// courier was ever assigned.
func (DeliveryDispatcher) ValidateOverride(o *order.Order, target order.Status, d *delivery.Delivery) error {
	if d == nil && o.Type() != order.Delivery {
		return nil
	}

	deliveryDone := d != nil && d.Status() == delivery.Delivered
	if (target == order.Delivered) == deliveryDone {
		return nil
	}

	if deliveryDone {
		return errs.NewInvalidStateErrorWithCause("order status", o.Status().String(),
			fmt.Errorf("delivery %s is delivered, the order must stay %s", d.ID(), order.Delivered))
	}
	return errs.NewInvalidStateErrorWithCause("order status", o.Status().String(),
		fmt.Errorf("a delivery order becomes %s only when its courier reports delivery", order.Delivered))
}

// Reassign validates the new courier and resets the delivery to pending on the same record.
func (DeliveryDispatcher) Reassign(d *delivery.Delivery, courier *user.User, now time.Time) error {
	if err := courier.ValidateAsCourier(); err != nil {
		return err
	}
	return d.Reassign(courier.ID(), now)
}

func requireOwnerOf(requester user.Principal, r *restaurant.Restaurant, action string) error {
	if err := requester.RequireRole(action, user.Owner); err != nil {
		return err
	}
	if !r.IsOwnedBy(requester.UserID) {
		return errs.NewPermissionDeniedError(action + ": restaurant " + r.ID().String() + " is not owned by caller")
	}
	return nil
}
