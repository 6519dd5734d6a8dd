package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery lists active couriers an owner can assign.
//
// Example:
//
//	query, _ := NewGetAvailableCouriersQuery(owner)
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
//	for _, c := range couriers {
//	    fmt.Printf("%s %s\n", c.ID, c.Name)
//	}
type GetAvailableCouriersQuery struct {
	principal user.Principal
	guard     guard.ConstructorGuard
}

func NewGetAvailableCouriersQuery(principal user.Principal) (GetAvailableCouriersQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	return GetAvailableCouriersQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

type CourierView struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}
