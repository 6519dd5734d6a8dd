package restaurantrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"type:varchar(255);not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func RestaurantFromDomain(r *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:      r.ID().Bytes(),
		OwnerID: r.OwnerID().Bytes(),
		Name:    r.Name(),
	}
}

func MenuItemFromDomain(m *restaurant.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           m.ID().Bytes(),
		RestaurantID: m.RestaurantID().Bytes(),
		Name:         m.Name(),
		Price:        m.Price(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(id, ownerID, dto.Name)
}

func menuItemToDomain(dto MenuItemDTO) (*restaurant.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewMenuItem(id, restaurantID, dto.Name, dto.Price)
}
