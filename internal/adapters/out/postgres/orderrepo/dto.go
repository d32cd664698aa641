// Package orderrepo persists order aggregates in PostgreSQL through GORM.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of the orders table. Status and payment mode are
// stored by name so the table reads without the Go enum at hand.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	FoodID          uuid.UUID `gorm:"type:uuid;not null"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ExternalOrderID string    `gorm:"size:128;not null"`
	UserAddressID   string    `gorm:"size:128;not null"`
	PaymentMode     string    `gorm:"size:8;not null"`
	Status          string    `gorm:"size:16;not null"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID().Bytes(),
		FoodID:          o.FoodID().Bytes(),
		UserID:          o.UserID().Bytes(),
		ExternalOrderID: o.ExternalOrderID(),
		UserAddressID:   o.UserAddressID(),
		PaymentMode:     o.PaymentMode().String(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	foodID, err := kernel.UUIDFromBytes(dto.FoodID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	mode, err := order.ParsePaymentMode(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, foodID, userID,
		dto.ExternalOrderID, dto.UserAddressID,
		mode, status,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
