package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderItem is one requested line: a menu item, its quantity and free-text preferences.
// The price is resolved from the menu when the command is handled.
type CreateOrderItem struct {
	MenuItemID  kernel.UUID
	Quantity    int
	Preferences string
}

// CreateOrderCommand represents a customer placing an order at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal, restaurantID, "delivery", []CreateOrderItem{
//	    {MenuItemID: pizzaID, Quantity: 2},
//	    {MenuItemID: colaID, Quantity: 1, Preferences: "no ice"},
//	})
//	if err != nil {
//	    return err // invalid input
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal    user.Principal
	restaurantID kernel.UUID
	orderType    order.Type
	items        []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape: a known order type, at least one
// item, positive quantities and well-formed identifiers. All violations are reported together.
func NewCreateOrderCommand(
	principal user.Principal,
	restaurantID kernel.UUID,
	orderType string,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		cmd.setRestaurantID(restaurantID),
		cmd.setOrderType(orderType),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.principal = principal

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() user.Principal {
	return c.principal
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	items := make([]CreateOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant_id", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType string) error {
	t, err := order.ParseType(orderType)
	if err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var itemErrs []error
	for idx, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			itemErrs = append(itemErrs, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].item_id", idx), err))
		}
		if item.Quantity <= 0 {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", idx), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = make([]CreateOrderItem, len(items))
	copy(c.items, items)
	return nil
}
