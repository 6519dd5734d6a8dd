package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/services"
)

// AssignDeliveryCommandHandler creates a Delivery and moves its order to delivering
// in one transaction.
//
// Double assignment is prevented twice over: the order status write is a
// compare-and-swap on ready, and deliveries.order_id is unique. The loser of a race
// fails with an invalid state error and its transaction is rolled back.
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DeliveryDispatcher
	now        func() time.Time
}

func NewAssignDeliveryCommandHandler(uowFactory UoWFactory) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
		now:        time.Now,
	}
}

// Handle checks, in order: order exists (NotFound), caller owns its restaurant
// (PermissionDenied), order is a ready delivery order (InvalidState), courier exists
// (NotFound) and is an active courier (InvalidInput).
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return nil, err
	}

	if err = h.dispatcher.AuthorizeAssignment(cmd.Principal(), o, r); err != nil {
		return nil, err
	}

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	previous := o.Status()
	d, err := h.dispatcher.Assign(o, courier, h.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, o, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
