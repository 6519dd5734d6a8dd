package queries

import (
	"context"
	"database/sql"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

type deliveryRow struct {
	ID             uuid.UUID
	Status         string
	Latitude       sql.NullFloat64
	Longitude      sql.NullFloat64
	UpdatedAt      time.Time
	CourierID      uuid.UUID
	CourierName    string
	CourierPhone   string
	OrderID        uuid.UUID
	OrderStatus    string
	TotalPrice     decimal.Decimal
	RestaurantID   uuid.UUID
	RestaurantName string
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
}

// Handle returns the caller's deliveries, most recently updated first.
func (h GetDeliveriesQueryHandler) Handle(ctx context.Context, query GetDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p := query.principal
	var filter string
	var args []any
	switch p.Role {
	case user.Courier:
		filter, args = "WHERE d.courier_id = ?", []any{p.UserID.Bytes()}
	case user.Owner:
		filter, args = "WHERE r.owner_id = ?", []any{p.UserID.Bytes()}
	case user.Admin:
	default:
		return nil, errs.NewPermissionDeniedError("list deliveries is not allowed for role " + p.Role.String())
	}

	var rows []deliveryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.status,
			d.latitude,
			d.longitude,
			d.updated_at,
			d.courier_id,
			COALESCE(cu.name, '') AS courier_name,
			COALESCE(cu.phone, '') AS courier_phone,
			o.id AS order_id,
			o.status AS order_status,
			o.total_price,
			o.restaurant_id,
			COALESCE(r.name, '') AS restaurant_name,
			o.customer_id,
			COALESCE(c.name, '') AS customer_name,
			COALESCE(c.phone, '') AS customer_phone
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		LEFT JOIN users c ON c.id = o.customer_id
		LEFT JOIN users cu ON cu.id = d.courier_id
		`+filter+`
		ORDER BY d.updated_at DESC, d.id
	`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryView, 0, len(rows))
	orders := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, view)
		orders = append(orders, OrderView{ID: view.OrderID, Items: make([]OrderItemView, 0)})
	}

	if err = attachItems(ctx, h.db, orders); err != nil {
		return nil, err
	}
	for i := range deliveries {
		deliveries[i].Items = orders[i].Items
	}

	return deliveries, nil
}

func (row deliveryRow) toView() (DeliveryView, error) {
	view := DeliveryView{
		Status:         row.Status,
		UpdatedAt:      row.UpdatedAt.UTC(),
		CourierName:    row.CourierName,
		CourierPhone:   row.CourierPhone,
		OrderStatus:    row.OrderStatus,
		TotalPrice:     row.TotalPrice,
		RestaurantName: row.RestaurantName,
		CustomerName:   row.CustomerName,
		CustomerPhone:  row.CustomerPhone,
	}

	if row.Latitude.Valid && row.Longitude.Valid {
		lat, lon := row.Latitude.Float64, row.Longitude.Float64
		view.Latitude, view.Longitude = &lat, &lon
	}

	ids := []struct {
		src uuid.UUID
		dst *kernel.UUID
	}{
		{row.ID, &view.ID},
		{row.CourierID, &view.CourierID},
		{row.OrderID, &view.OrderID},
		{row.RestaurantID, &view.RestaurantID},
		{row.CustomerID, &view.CustomerID},
	}
	for _, id := range ids {
		parsed, err := kernel.UUIDFromBytes(id.src[:])
		if err != nil {
			return DeliveryView{}, err
		}
		*id.dst = parsed
	}

	return view, nil
}
