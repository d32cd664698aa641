package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListFoodsQueryIsNotConstructed = errors.New(
		"ListFoodsQuery must be created via NewListFoodsQuery constructor",
	)
)

// ListFoodsQuery returns the whole catalog sorted by name.
type ListFoodsQuery struct {
	guard guard.ConstructorGuard
}

func NewListFoodsQuery() ListFoodsQuery {
	return ListFoodsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListFoodsQuery) Validate() error {
	return q.guard.Validate(ErrListFoodsQueryIsNotConstructed)
}

// FoodView is the catalog read model.
type FoodView struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
}
