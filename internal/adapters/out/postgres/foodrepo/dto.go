// Package foodrepo persists catalog items in PostgreSQL through GORM.
package foodrepo

import (
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FoodDTO is the row shape of the foods table.
type FoodDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Image       string          `gorm:"not null"`
	Category    string          `gorm:"size:16;not null"`
}

func (FoodDTO) TableName() string {
	return "foods"
}

func fromDomain(f *food.Food) FoodDTO {
	return FoodDTO{
		ID:          f.ID().Bytes(),
		Name:        f.Name(),
		Description: f.Description(),
		Price:       f.Price(),
		Image:       f.Image(),
		Category:    f.Category().String(),
	}
}

func toDomain(dto FoodDTO) (*food.Food, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	category, err := food.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}

	return food.RestoreFood(id, dto.Name, dto.Description, dto.Price, dto.Image, category)
}
