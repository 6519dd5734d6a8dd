package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns the caller's orders newest first. Couriers are denied; they list
// deliveries instead.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p := query.Principal()
	switch p.Role {
	case user.Customer:
		return loadOrderViews(ctx, h.db, []string{"o.customer_id = ?"}, p.UserID.Bytes())
	case user.Owner:
		return loadOrderViews(ctx, h.db, []string{"r.owner_id = ?"}, p.UserID.Bytes())
	case user.Admin:
		return loadOrderViews(ctx, h.db, nil)
	default:
		return nil, errs.NewPermissionDeniedError("list orders is not allowed for role " + p.Role.String())
	}
}
