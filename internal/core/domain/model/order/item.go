package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an ordered line. The unit price is captured from the menu when the
// order is placed so later menu changes never alter historical totals.
type Item struct {
	menuItemID  kernel.UUID
	quantity    int
	preferences string
	unitPrice   decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewItem validates and creates an order line.
// Quantity must be greater than 0 and the unit price must not be negative.
func NewItem(menuItemID kernel.UUID, quantity int, preferences string, unitPrice decimal.Decimal) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}
	item.preferences = preferences

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Preferences() string {
	return i.preferences
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns quantity × unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit_price", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}
