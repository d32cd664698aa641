package ports

import (
	"context"

	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
)

// FoodRepository defines the persistence contract for catalog items.
type FoodRepository interface {
	Add(ctx context.Context, item *food.Food) error
	Get(ctx context.Context, id kernel.UUID) (*food.Food, error)
	List(ctx context.Context) ([]*food.Food, error)
}
