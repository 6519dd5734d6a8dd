package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status       string          `gorm:"type:varchar(16);index;not null"`
	OrderType    string          `gorm:"type:varchar(16);not null"`
	OrderTime    time.Time       `gorm:"index;not null"`
	Items        []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one denormalized order line. Position keeps the order in which
// items were placed.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position    int             `gorm:"not null"`
	MenuItemID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    int             `gorm:"not null"`
	Preferences string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for idx, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     o.ID().Bytes(),
			Position:    idx,
			MenuItemID:  item.MenuItemID().Bytes(),
			Quantity:    item.Quantity(),
			Preferences: item.Preferences(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		TotalPrice:   o.TotalPrice(),
		Status:       o.Status().String(),
		OrderType:    o.Type().String(),
		OrderTime:    o.OrderTime().UTC(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	orderType, err := order.ParseType(dto.OrderType)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.NewItem(menuItemID, itemDTO.Quantity, itemDTO.Preferences, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, restaurantID, orderType, status, dto.TotalPrice, items, dto.OrderTime)
}
