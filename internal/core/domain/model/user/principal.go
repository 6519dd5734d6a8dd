package user

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// ErrPrincipalIsRequired is returned when an operation runs without an authenticated caller.
var ErrPrincipalIsRequired = errs.NewValueIsRequiredError("principal")

// Principal is the authenticated caller of an operation, resolved from the bearer
// token by the inbound adapter.
type Principal struct {
	UserID kernel.UUID
	Role   Role
}

func NewPrincipal(userID kernel.UUID, role Role) (Principal, error) {
	p := Principal{UserID: userID, Role: role}
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

func (p Principal) Validate() error {
	if err := errors.Join(p.UserID.Validate(), p.Role.Validate()); err != nil {
		return errors.Join(ErrPrincipalIsRequired, err)
	}
	return nil
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}

// RequireRole fails with a PermissionDeniedError for action unless the principal
// has one of roles.
func (p Principal) RequireRole(action string, roles ...Role) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return errs.NewPermissionDeniedError(action + " is not allowed for role " + p.Role.String())
}
