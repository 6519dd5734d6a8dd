package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an operator moving an order to a new status.
// With override set, an admin may bypass the transition table.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	principal user.Principal
	orderID   kernel.UUID
	status    order.Status
	override  bool

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	principal user.Principal,
	orderID kernel.UUID,
	status string,
	override bool,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		override: override,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	cmd.principal = principal

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Principal() user.Principal { return c.principal }
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID      { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status      { return c.status }
func (c UpdateOrderStatusCommand) Override() bool            { return c.override }

func (c *UpdateOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status string) error {
	s, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
