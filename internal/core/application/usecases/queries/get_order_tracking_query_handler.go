package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler serves tracking reads. The courier position comes
// from the position cache when present and from the deliveries table otherwise.
type GetOrderTrackingQueryHandler struct {
	db     *gorm.DB
	cache  ports.PositionCache
	logger *slog.Logger
}

// NewGetOrderTrackingQueryHandler creates the handler. cache may be nil.
func NewGetOrderTrackingQueryHandler(
	db *gorm.DB,
	cache ports.PositionCache,
	logger *slog.Logger,
) GetOrderTrackingQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderTrackingQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "GetOrderTrackingQueryHandler"),
	}
}

type trackingAccessRow struct {
	ID           uuid.UUID
	Status       string
	OrderType    string
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
	OwnerID      uuid.NullUUID
	DeliveryID   uuid.NullUUID
	CourierID    uuid.NullUUID
}

type trackingPositionRow struct {
	Status    string
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	UpdatedAt time.Time
}

// Handle returns the tracking view of an order.
//
// Returns:
//   - ObjectNotFoundError if the order does not exist
//   - PermissionDeniedError unless the caller is the order's customer, the restaurant
//     owner, the assigned courier or an admin
func (h GetOrderTrackingQueryHandler) Handle(ctx context.Context, query GetOrderTrackingQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	var rows []trackingAccessRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.order_type,
			o.customer_id,
			o.restaurant_id,
			r.owner_id,
			d.id AS delivery_id,
			d.courier_id
		FROM orders o
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ?
	`, query.orderID.Bytes()).Scan(&rows).Error
	if err != nil {
		return TrackingView{}, err
	}
	if len(rows) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundError("order_id", query.orderID)
	}
	row := rows[0]

	if !row.isVisibleTo(query.principal) {
		return TrackingView{}, errs.NewPermissionDeniedError("track order " + query.orderID.String())
	}

	view := TrackingView{
		OrderID:     query.orderID,
		OrderStatus: row.Status,
		OrderType:   row.OrderType,
	}
	if view.RestaurantID, err = kernel.UUIDFromBytes(row.RestaurantID[:]); err != nil {
		return TrackingView{}, err
	}

	if !row.DeliveryID.Valid {
		return view, nil
	}

	deliveryView, err := h.deliveryView(ctx, query.orderID, row)
	if err != nil {
		return TrackingView{}, err
	}
	view.Delivery = deliveryView

	return view, nil
}

func (h GetOrderTrackingQueryHandler) deliveryView(
	ctx context.Context,
	orderID kernel.UUID,
	row trackingAccessRow,
) (*TrackingDeliveryView, error) {
	deliveryID, err := kernel.UUIDFromBytes(row.DeliveryID.UUID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(row.CourierID.UUID[:])
	if err != nil {
		return nil, err
	}

	view := &TrackingDeliveryView{ID: deliveryID, CourierID: courierID}

	if cached, ok := h.cachedPosition(ctx, orderID); ok && cached.DeliveryID.IsEqual(deliveryID) {
		view.Status = cached.Status
		view.Latitude, view.Longitude = cached.Latitude, cached.Longitude
		view.UpdatedAt = cached.UpdatedAt.UTC()
		return view, nil
	}

	var position trackingPositionRow
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			latitude,
			longitude,
			updated_at
		FROM deliveries
		WHERE id = ?
	`, row.DeliveryID.UUID).Scan(&position).Error
	if err != nil {
		return nil, err
	}

	view.Status = position.Status
	view.UpdatedAt = position.UpdatedAt.UTC()
	if position.Latitude.Valid && position.Longitude.Valid {
		lat, lon := position.Latitude.Float64, position.Longitude.Float64
		view.Latitude, view.Longitude = &lat, &lon
	}

	return view, nil
}

func (h GetOrderTrackingQueryHandler) cachedPosition(ctx context.Context, orderID kernel.UUID) (ports.CachedPosition, bool) {
	if h.cache == nil {
		return ports.CachedPosition{}, false
	}

	cached, ok, err := h.cache.Get(ctx, orderID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			h.logger.WarnContext(ctx, "position cache read failed", "order_id", orderID.String(), "error", err)
		}
		return ports.CachedPosition{}, false
	}

	return cached, ok
}

func (row trackingAccessRow) isVisibleTo(p user.Principal) bool {
	id := p.UserID.Bytes()
	switch p.Role {
	case user.Admin:
		return true
	case user.Customer:
		return row.CustomerID == id
	case user.Owner:
		return row.OwnerID.Valid && row.OwnerID.UUID == id
	case user.Courier:
		return row.CourierID.Valid && row.CourierID.UUID == id
	default:
		return false
	}
}
