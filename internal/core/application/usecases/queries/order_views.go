package queries

import (
	"context"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderViewSelect = `
	SELECT
		o.id,
		o.customer_id,
		o.restaurant_id,
		COALESCE(r.name, '') AS restaurant_name,
		o.total_price,
		o.status,
		o.order_type,
		o.order_time
	FROM orders o
	LEFT JOIN restaurants r ON r.id = o.restaurant_id
`

// loadOrderViews runs orderViewSelect with the given filters joined by AND, newest
// first, and attaches items.
func loadOrderViews(ctx context.Context, db *gorm.DB, filters []string, args ...any) ([]OrderView, error) {
	sql := orderViewSelect
	if len(filters) > 0 {
		sql += " WHERE " + strings.Join(filters, " AND ")
	}
	sql += " ORDER BY o.order_time DESC, o.id"

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		var (
			id, customerID, restaurantID uuid.UUID
			view                         OrderView
			orderTime                    time.Time
		)

		err = rows.Scan(
			&id,
			&customerID,
			&restaurantID,
			&view.RestaurantName,
			&view.TotalPrice,
			&view.Status,
			&view.OrderType,
			&orderTime,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if view.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		view.OrderTime = orderTime.UTC()
		view.Items = make([]OrderItemView, 0)
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachItems(ctx, db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

type orderItemRow struct {
	OrderID     uuid.UUID
	MenuItemID  uuid.UUID
	Name        string
	Quantity    int
	Preferences string
	UnitPrice   decimal.Decimal
}

func attachItems(ctx context.Context, db *gorm.DB, orders []OrderView) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID.Bytes())
		index[o.ID.Bytes()] = i
	}

	var rows []orderItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			oi.order_id,
			oi.menu_item_id,
			COALESCE(mi.name, '') AS name,
			oi.quantity,
			oi.preferences,
			oi.unit_price
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id IN ?
		ORDER BY oi.order_id, oi.position
	`, ids).Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			continue
		}

		menuItemID, err := kernel.UUIDFromBytes(row.MenuItemID[:])
		if err != nil {
			return err
		}

		orders[i].Items = append(orders[i].Items, OrderItemView{
			MenuItemID:  menuItemID,
			Name:        row.Name,
			Quantity:    row.Quantity,
			Preferences: row.Preferences,
			UnitPrice:   row.UnitPrice,
		})
	}

	return nil
}
