package queries

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFoodsQueryHandler struct {
	db *gorm.DB
}

func NewListFoodsQueryHandler(db *gorm.DB) ListFoodsQueryHandler {
	return ListFoodsQueryHandler{db: db}
}

func (h ListFoodsQueryHandler) Handle(ctx context.Context, query ListFoodsQuery) ([]FoodView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			price,
			image,
			category
		FROM foods
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, storeError("select foods", err)
	}
	defer rows.Close()

	foods := make([]FoodView, 0)
	for rows.Next() {
		var (
			view FoodView
			id   uuid.UUID
		)
		if err = rows.Scan(
			&id,
			&view.Name,
			&view.Description,
			&view.Price,
			&view.Image,
			&view.Category,
		); err != nil {
			return nil, storeError("scan foods", err)
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		foods = append(foods, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("select foods", err)
	}

	return foods, nil
}
