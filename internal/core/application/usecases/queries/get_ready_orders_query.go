package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// GetReadyOrdersQuery lists delivery orders waiting for a courier at the caller's
// restaurants.
type GetReadyOrdersQuery struct {
	principal user.Principal
	guard     guard.ConstructorGuard
}

func NewGetReadyOrdersQuery(principal user.Principal) (GetReadyOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetReadyOrdersQuery{}, err
	}
	return GetReadyOrdersQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

type GetReadyOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetReadyOrdersQueryHandler(db *gorm.DB) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{db: db}
}

func (h GetReadyOrdersQueryHandler) Handle(ctx context.Context, query GetReadyOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := query.principal.RequireRole("list ready orders", user.Owner); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, h.db,
		[]string{"o.status = ?", "o.order_type = ?", "r.owner_id = ?"},
		order.Ready.String(), order.Delivery.String(), query.principal.UserID.Bytes(),
	)
}
