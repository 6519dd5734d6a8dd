package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions available to restaurant operators:
//
//	pending ──> confirmed ──> preparing ──> ready ──> delivered   (pickup, dine_in)
//	   │            │             │           │
//	   │            │             │           └──> delivering ──> delivered   (delivery)
//	   ├──> rejected <┘           │            (assignment)    (position report)
//	   └──> cancelled <───────────┘
//
// ready -> delivering is performed only by courier assignment and
// delivering -> delivered only by the courier's final position report.
// Admins may bypass the table with an explicit override.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	Delivering
	Delivered
	Cancelled
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Ready:      "ready",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Rejected:   "rejected",
	}
}

// operatorTransitions lists the targets reachable through ChangeStatus.
// Ready -> Delivered is further restricted to non-delivery orders.
func operatorTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and assignment-driven states have no operator transitions
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled, Rejected},
		Confirmed: {Preparing, Cancelled, Rejected},
		Preparing: {Ready, Cancelled},
		Ready:     {Delivered},
	}
}

// ParseStatus converts a wire name such as "preparing" into a Status.
// Unknown names fail with a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// ValidateTransition checks an operator-driven move from s to target for an
// order of the given type. Disallowed moves fail with an InvalidStateError.
func (s Status) ValidateTransition(target Status, orderType Type) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == Delivering {
		return errs.NewInvalidStateErrorWithCause("order status", s.String(),
			fmt.Errorf("%s can only be reached by assigning a courier", Delivering))
	}

	if s == Ready && target == Delivered && orderType == Delivery {
		return errs.NewInvalidStateErrorWithCause("order status", s.String(),
			fmt.Errorf("delivery orders are completed by the courier"))
	}

	for _, allowed := range operatorTransitions()[s] {
		if allowed == target {
			return nil
		}
	}

	return errs.NewInvalidStateErrorWithCause("order status", s.String(),
		fmt.Errorf("transition to %s is not allowed", target))
}
