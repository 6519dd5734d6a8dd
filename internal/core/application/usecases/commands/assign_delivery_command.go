package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a restaurant owner handing a ready delivery order
// to a courier.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(owner, orderID, courierID)
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, cmd)
//	if errs.KindOf(err) == errs.KindInvalidState {
//	    // the order is not ready, or another owner assigned it first
//	}
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	principal user.Principal
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDeliveryCommand(principal user.Principal, orderID kernel.UUID, courierID kernel.UUID) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		requireID("order_id", orderID),
		requireID("delivery_person_id", courierID),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}
	cmd.principal, cmd.orderID, cmd.courierID = principal, orderID, courierID

	return cmd, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) Principal() user.Principal { return c.principal }
func (c AssignDeliveryCommand) OrderID() kernel.UUID      { return c.orderID }
func (c AssignDeliveryCommand) CourierID() kernel.UUID    { return c.courierID }

func requireID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
