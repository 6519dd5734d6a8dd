package user

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
)

// User is a registered account. Registration lives outside this service; the
// core only reads users to authorize callers and to pick couriers.
type User struct {
	id     kernel.UUID
	name   string
	email  string
	phone  string
	role   Role
	status Status
	guard  guard.ConstructorGuard
}

func NewUser(id kernel.UUID, name, email, phone string, role Role, status Status) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
		u.setStatus(status),
	); err != nil {
		return nil, err
	}
	u.email = email
	u.phone = phone

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Name() string    { return u.name }
func (u *User) Email() string   { return u.email }
func (u *User) Phone() string   { return u.phone }
func (u *User) Role() Role      { return u.role }
func (u *User) Status() Status  { return u.status }
func (u *User) IsActive() bool  { return u.status == Active }
func (u *User) IsCourier() bool { return u.role == Courier }

// ValidateAsCourier checks that the user can be assigned to a delivery:
// role delivery and status active. Failures are invalid input.
func (u *User) ValidateAsCourier() error {
	if u.role != Courier {
		return errs.NewValueIsInvalidErrorWithCause("delivery_person_id",
			fmt.Errorf("user %s has role %s, not %s", u.id, u.role, Courier))
	}
	if u.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("delivery_person_id",
			fmt.Errorf("courier %s is %s", u.id, u.status))
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	u.status = status
	return nil
}
