package foodrepo

import (
	"context"
	"errors"

	"foodorder/internal/adapters/out/postgres/pgerr"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

var errDuplicateFood = errors.New("a food with this id already exists")

// GormFoodRepository implements ports.FoodRepository using GORM.
type GormFoodRepository struct {
	db *gorm.DB
}

func NewGormFoodRepository(db *gorm.DB) *GormFoodRepository {
	return &GormFoodRepository{db: db}
}

func (r *GormFoodRepository) Add(ctx context.Context, item *food.Food) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return insertError(err)
	}
	return nil
}

func insertError(err error) error {
	switch pgerr.Code(err) {
	case pgerr.UniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause("id", errDuplicateFood)
	case pgerr.CheckViolation:
		switch pgerr.Constraint(err) {
		case "foods_price_check":
			return errs.NewValueIsInvalidError("price")
		case "foods_category_check":
			return errs.NewValueIsInvalidError("category")
		}
		return errs.NewValueIsInvalidError("food")
	default:
		return errs.NewStoreErrorWithCause("insert food", err)
	}
}

func (r *GormFoodRepository) Get(ctx context.Context, id kernel.UUID) (*food.Food, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FoodDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("food", id.String())
		}
		return nil, errs.NewStoreErrorWithCause("get food", err)
	}

	item, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStoreErrorWithCause("decode food", err)
	}
	return item, nil
}

// List returns the whole catalog ordered by name.
func (r *GormFoodRepository) List(ctx context.Context) ([]*food.Food, error) {
	var dtos []FoodDTO
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreErrorWithCause("list foods", err)
	}

	items := make([]*food.Food, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewStoreErrorWithCause("decode food", err)
		}
		items = append(items, item)
	}
	return items, nil
}
