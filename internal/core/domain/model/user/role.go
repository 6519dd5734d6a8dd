package user

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the authorization role carried by every authenticated caller.
type Role int

const (
	RoleUnknown Role = iota
	Customer
	Owner
	Admin
	// Courier is stored as "delivery".
	Courier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		Customer:    "customer",
		Owner:       "owner",
		Admin:       "admin",
		Courier:     "delivery",
	}
}

func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > Courier {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Status is the account status of a user.
type Status int

const (
	StatusUnknown Status = iota
	Active
	Inactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Active:        "active",
		Inactive:      "inactive",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid user status", s))
}

func (s Status) Validate() error {
	if s <= StatusUnknown || s > Inactive {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid user status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
