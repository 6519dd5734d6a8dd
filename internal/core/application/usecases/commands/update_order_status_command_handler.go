package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies operator status changes.
// The write is a compare-and-swap on the status read at the start of the
// transaction, so two operators racing on one order cannot both win.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher services.DeliveryDispatcher
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
	}
}

// Handle checks, in order: the order exists (NotFound), the caller is an admin or
// owns the order's restaurant (PermissionDenied), override is only used by admins
// (PermissionDenied), and the transition is allowed (InvalidState). An override must
// also leave a delivery order delivered exactly when its delivery is (InvalidState).
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return nil, err
	}

	if err = authorizeStatusChange(cmd.Principal(), r, cmd.Override()); err != nil {
		return nil, err
	}

	previous := o.Status()
	if cmd.Override() {
		err = h.override(ctx, uow.DeliveryRepository(), o, cmd.Status())
	} else {
		err = o.ChangeStatus(cmd.Status())
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, o, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h UpdateOrderStatusCommandHandler) override(
	ctx context.Context,
	deliveries ports.DeliveryRepository,
	o *order.Order,
	target order.Status,
) error {
	d, err := deliveries.GetByOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		d, err = nil, nil
	}
	if err != nil {
		return err
	}

	if err = h.dispatcher.ValidateOverride(o, target, d); err != nil {
		return err
	}
	return o.Override(target)
}

func authorizeStatusChange(principal user.Principal, r *restaurant.Restaurant, override bool) error {
	switch {
	case principal.Is(user.Admin):
		return nil
	case override:
		return errs.NewPermissionDeniedError("status override is reserved for admins")
	case principal.Is(user.Owner) && r.IsOwnedBy(principal.UserID):
		return nil
	case principal.Is(user.Owner):
		return errs.NewPermissionDeniedError("update order status: restaurant " + r.ID().String() + " is not owned by caller")
	default:
		return errs.NewPermissionDeniedError("update order status is not allowed for role " + principal.Role.String())
	}
}
