package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrReassignDeliveryCommandIsNotConstructed = errors.New(
	"ReassignDeliveryCommand must be created via NewReassignDeliveryCommand constructor",
)

// ReassignDeliveryCommand represents an owner replacing the courier of a delivery.
type ReassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	principal  user.Principal
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewReassignDeliveryCommand(
	principal user.Principal,
	deliveryID kernel.UUID,
	courierID kernel.UUID,
) (ReassignDeliveryCommand, error) {
	cmd := ReassignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		requireID("delivery_id", deliveryID),
		requireID("delivery_person_id", courierID),
	); err != nil {
		return ReassignDeliveryCommand{}, err
	}
	cmd.principal, cmd.deliveryID, cmd.courierID = principal, deliveryID, courierID

	return cmd, nil
}

func (c ReassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrReassignDeliveryCommandIsNotConstructed)
}

func (c ReassignDeliveryCommand) Principal() user.Principal { return c.principal }
func (c ReassignDeliveryCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c ReassignDeliveryCommand) CourierID() kernel.UUID    { return c.courierID }
