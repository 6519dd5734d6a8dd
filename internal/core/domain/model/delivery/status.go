package delivery

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the courier-side progress of a delivery.
//
//	pending ──> on_route ──> delivered
//	   └────────────────────────┘
//
// Reassignment resets any non-delivered delivery back to pending.
type Status int

const (
	Unknown Status = iota
	Pending
	OnRoute
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		OnRoute:   "on_route",
		Delivered: "delivered",
	}
}

// ParseStatus converts "pending", "on_route" or "delivered" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateReport checks that a courier report moving from s to target is allowed.
// Delivered accepts no further reports and on_route cannot fall back to pending.
func (s Status) ValidateReport(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if s == Delivered {
		return errs.NewInvalidStateErrorWithCause("delivery status", s.String(),
			fmt.Errorf("delivered deliveries accept no further reports"))
	}

	if s == OnRoute && target == Pending {
		return errs.NewInvalidStateErrorWithCause("delivery status", s.String(),
			fmt.Errorf("cannot move back to %s", Pending))
	}

	return nil
}
