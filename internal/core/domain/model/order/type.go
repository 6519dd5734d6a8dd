package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Type is the fulfillment channel of an order.
type Type int

const (
	TypeUnknown Type = iota
	Pickup
	Delivery
	DineIn
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "unknown",
		Pickup:      "pickup",
		Delivery:    "delivery",
		DineIn:      "dine_in",
	}
}

// ParseType converts "pickup", "delivery" or "dine_in" into a Type.
func ParseType(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != TypeUnknown && name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order_type", fmt.Errorf("%q is not a valid order type", s))
}

func (t Type) Validate() error {
	if t <= TypeUnknown || t > DineIn {
		return errs.NewValueIsInvalidErrorWithCause("order_type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
