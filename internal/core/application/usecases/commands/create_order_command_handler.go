package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places customer orders.
// Unit prices are captured from the menu inside the same transaction that stores
// the order, so the stored total always matches the stored items.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindNotFound:         // unknown restaurant or menu item
//	case errs.KindPermissionDenied: // caller is not a customer
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle resolves the restaurant and every menu item, computes the total and
// persists the order in pending status.
//
// Returns:
//   - PermissionDeniedError unless the caller is a customer
//   - ObjectNotFoundError for an unknown restaurant or menu item
//   - ValueIsInvalidError for a menu item of another restaurant
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := cmd.Principal().RequireRole("create order", user.Customer); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	orderRepo := uow.OrderRepository()

	r, err := restaurantRepo.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for idx, requested := range cmd.Items() {
		menuItem, menuErr := restaurantRepo.GetMenuItem(ctx, requested.MenuItemID)
		if menuErr != nil {
			return nil, menuErr
		}

		if !menuItem.BelongsTo(r.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].item_id", idx),
				fmt.Errorf("menu item %s is not served by restaurant %s", menuItem.ID(), r.ID()),
			)
		}

		item, itemErr := order.NewItem(menuItem.ID(), requested.Quantity, requested.Preferences, menuItem.Price())
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.Principal().UserID, r.ID(), cmd.OrderType(), items, h.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
