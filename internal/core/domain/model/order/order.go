package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order is placed without any item.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root for a customer's food order.
//
// Order follows these invariants:
//   - totalPrice equals the sum of quantity × unit price captured at creation
//   - items are immutable once the order is placed
//   - status changes follow the transition table in Status, except for admin overrides
//   - orders are never deleted
type Order struct {
	kernel.EventRecorder

	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	totalPrice   decimal.Decimal
	status       Status
	orderType    Type
	orderTime    time.Time
	items        []Item

	isConstructed bool
}

// NewOrder places a new order in Pending status and computes its total from the items.
//
// Example:
//
//	burger, _ := order.NewItem(burgerID, 2, "no onions", decimal.RequireFromString("10.00"))
//	fries, _ := order.NewItem(friesID, 1, "", decimal.RequireFromString("7.50"))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, order.Delivery,
//	    []order.Item{burger, fries}, time.Now())
//	// o.TotalPrice() == 27.50
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	orderType Type,
	items []Item,
	orderTime time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setOrderType(orderType),
		o.setItems(items),
		o.setOrderTime(orderTime),
	); err != nil {
		return nil, err
	}

	o.totalPrice = calculateTotal(o.items)

	o.RaiseDomainEvent(PlacedEvent{
		OrderID:      o.id,
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		OrderType:    o.orderType.String(),
		TotalPrice:   o.totalPrice,
		At:           o.orderTime,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The stored total is kept as is
// since it reflects the prices captured when the order was placed.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	orderType Type,
	status Status,
	totalPrice decimal.Decimal,
	items []Item,
	orderTime time.Time,
) (*Order, error) {
	o := &Order{
		totalPrice:    totalPrice,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setOrderType(orderType),
		o.setStatus(status),
		o.setItems(items),
		o.setOrderTime(orderTime),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// TotalPrice returns the total captured at creation.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

// Items returns a copy of the ordered lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// IsReadyForDelivery reports whether a courier may be assigned to the order.
func (o *Order) IsReadyForDelivery() bool {
	return o.status == Ready && o.orderType == Delivery
}

// ChangeStatus applies an operator-driven transition following the Status table.
//
// Returns:
//   - ValueIsInvalidError if target is not a valid status
//   - InvalidStateError if the transition is not allowed from the current status
func (o *Order) ChangeStatus(target Status) error {
	if err := o.status.ValidateTransition(target, o.orderType); err != nil {
		return err
	}

	o.moveTo(target, false)
	return nil
}

// Override sets any valid status regardless of the transition table, except
// Delivering which only a courier assignment reaches. Authorization (admin only) and
// consistency with the order's delivery are the caller's responsibility.
func (o *Order) Override(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == Delivering && o.status != Delivering {
		return errs.NewInvalidStateErrorWithCause("order status", o.status.String(),
			fmt.Errorf("%s is reached only by assigning a courier", Delivering))
	}

	if target != o.status {
		o.moveTo(target, true)
	}
	return nil
}

// StartDelivery moves a ready delivery order to Delivering once a courier is assigned.
func (o *Order) StartDelivery() error {
	if !o.IsReadyForDelivery() {
		return errs.NewInvalidStateErrorWithCause("order status", o.status.String(),
			fmt.Errorf("courier assignment requires a %s order in %s status", Delivery, Ready))
	}

	o.moveTo(Delivering, false)
	return nil
}

// CompleteDelivery moves a Delivering order to Delivered when the courier reports delivery.
func (o *Order) CompleteDelivery() error {
	if o.status != Delivering {
		return errs.NewInvalidStateErrorWithCause("order status", o.status.String(),
			fmt.Errorf("only %s orders can be completed by the courier", Delivering))
	}

	o.moveTo(Delivered, false)
	return nil
}

func (o *Order) moveTo(target Status, override bool) {
	from := o.status
	o.status = target

	o.RaiseDomainEvent(StatusChangedEvent{
		OrderID:      o.id,
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		From:         from.String(),
		To:           target.String(),
		Override:     override,
		At:           time.Now().UTC(),
	})
}

func calculateTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant_id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setOrderTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("order_time")
	}
	o.orderTime = t
	return nil
}
