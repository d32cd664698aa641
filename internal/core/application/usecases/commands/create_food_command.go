package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateFoodCommandIsNotConstructed = errors.New(
		"CreateFoodCommand must be created via NewCreateFoodCommand constructor",
	)
)

// CreateFoodCommand adds an item to the catalog.
type CreateFoodCommand struct { //nolint:recvcheck //using for validation
	foodID      kernel.UUID
	name        string
	description string
	price       decimal.Decimal
	image       string
	category    food.Category

	guard guard.ConstructorGuard
}

// NewCreateFoodCommand parses the category. The remaining fields are validated by
// the Food entity when the handler builds it.
func NewCreateFoodCommand(
	foodID kernel.UUID,
	name, description string,
	price decimal.Decimal,
	image, category string,
) (CreateFoodCommand, error) {
	c, err := food.ParseCategory(category)
	if err = errors.Join(foodID.Validate(), err); err != nil {
		return CreateFoodCommand{}, err
	}

	return CreateFoodCommand{
		foodID:      foodID,
		name:        name,
		description: description,
		price:       price,
		image:       image,
		category:    c,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateFoodCommand) Validate() error {
	return c.guard.Validate(ErrCreateFoodCommandIsNotConstructed)
}

func (c CreateFoodCommand) FoodID() kernel.UUID { return c.foodID }
func (c CreateFoodCommand) Name() string { return c.name }
func (c CreateFoodCommand) Description() string { return c.description }
func (c CreateFoodCommand) Price() decimal.Decimal { return c.price }
func (c CreateFoodCommand) Image() string { return c.image }
func (c CreateFoodCommand) Category() food.Category { return c.category }
