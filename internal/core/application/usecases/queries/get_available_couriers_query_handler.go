package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle returns users with role delivery and status active, sorted by name.
// Only owners and admins may list couriers.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := query.principal.RequireRole("list available couriers", user.Owner, user.Admin); err != nil {
		return nil, err
	}

	couriers := make([]CourierView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			phone
		FROM users
		WHERE role = ? AND status = ?
		ORDER BY name, id
	`, user.Courier.String(), user.Active.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courier CourierView
		var id uuid.UUID

		if err = rows.Scan(&id, &courier.Name, &courier.Email, &courier.Phone); err != nil {
			return nil, err
		}

		if courier.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
