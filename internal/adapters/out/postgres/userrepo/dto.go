package userrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO maps the users table owned by the registration service.
// Couriers are stored with role "delivery".
type UserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Email  string    `gorm:"type:varchar(255)"`
	Phone  string    `gorm:"type:varchar(32)"`
	Role   string    `gorm:"type:varchar(16);index;not null"`
	Status string    `gorm:"type:varchar(16);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func FromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:     u.ID().Bytes(),
		Name:   u.Name(),
		Email:  u.Email(),
		Phone:  u.Phone(),
		Role:   u.Role().String(),
		Status: u.Status().String(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	status, err := user.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return user.NewUser(id, dto.Name, dto.Email, dto.Phone, role, status)
}
