package restaurant

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
	ErrMenuItemIsNotConstructed   = errors.New("MenuItem must be created via NewMenuItem constructor")
)

// Restaurant is read by the core to check ownership. Its CRUD lives elsewhere.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string
	guard   guard.ConstructorGuard
}

func NewRestaurant(id kernel.UUID, ownerID kernel.UUID, name string) (*Restaurant, error) {
	r := &Restaurant{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		requireID("owner_id", ownerID),
		requireName(name),
	); err != nil {
		return nil, err
	}
	r.id, r.ownerID, r.name = id, ownerID, name

	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID      { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Name() string         { return r.name }

// IsOwnedBy reports whether userID owns the restaurant.
func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// MenuItem is a priced dish of a restaurant. Its price is captured into order items
// when an order is placed.
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        decimal.Decimal
	guard        guard.ConstructorGuard
}

func NewMenuItem(id kernel.UUID, restaurantID kernel.UUID, name string, price decimal.Decimal) (*MenuItem, error) {
	m := &MenuItem{guard: guard.NewConstructorGuard()}

	var priceErr error
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}

	if err := errors.Join(
		id.Validate(),
		requireID("restaurant_id", restaurantID),
		requireName(name),
		priceErr,
	); err != nil {
		return nil, err
	}
	m.id, m.restaurantID, m.name, m.price = id, restaurantID, name, price

	return m, nil
}

func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m *MenuItem) ID() kernel.UUID           { return m.id }
func (m *MenuItem) RestaurantID() kernel.UUID { return m.restaurantID }
func (m *MenuItem) Name() string              { return m.name }
func (m *MenuItem) Price() decimal.Decimal    { return m.price }

// BelongsTo reports whether the item is on the menu of restaurantID.
func (m *MenuItem) BelongsTo(restaurantID kernel.UUID) bool {
	return m.restaurantID.IsEqual(restaurantID)
}

func requireID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
