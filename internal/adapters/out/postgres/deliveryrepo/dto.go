package deliveryrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO maps the deliveries table. order_id is unique: an order has at most
// one delivery. UpdatedAt is the server time of the last change and is never stamped by
// gorm. LastReportAt is the device time of the current courier's last accepted report.
type DeliveryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CourierID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    string    `gorm:"type:varchar(16);index;not null"`
	Latitude  *float64
	Longitude *float64
	UpdatedAt time.Time `gorm:"autoCreateTime:false;autoUpdateTime:false;index;not null"`

	LastReportAt *time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:        d.ID().Bytes(),
		OrderID:   d.OrderID().Bytes(),
		CourierID: d.CourierID().Bytes(),
		Status:    d.Status().String(),
		UpdatedAt: d.UpdatedAt().UTC(),
	}

	if last := d.LastReportAt(); last != nil {
		t := last.UTC()
		dto.LastReportAt = &t
	}

	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}

	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return delivery.RestoreDelivery(id, orderID, courierID, status, location, dto.UpdatedAt.UTC(), dto.LastReportAt)
}
