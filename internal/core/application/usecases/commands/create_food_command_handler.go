package commands

import (
	"context"

	"foodorder/internal/core/domain/model/food"
)

// CreateFoodCommandHandler stores new catalog items.
type CreateFoodCommandHandler struct {
	uowFactory FoodUoWFactory
}

func NewCreateFoodCommandHandler(uowFactory FoodUoWFactory) CreateFoodCommandHandler {
	return CreateFoodCommandHandler{uowFactory: uowFactory}
}

func (h CreateFoodCommandHandler) Handle(ctx context.Context, cmd CreateFoodCommand) (*food.Food, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := food.NewFood(cmd.FoodID(), cmd.Name(), cmd.Description(), cmd.Price(), cmd.Image(), cmd.Category())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.FoodRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
