package queries

import (
	"context"
	"database/sql"
	"errors"

	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order view or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(
		`SELECT`+orderColumns+` FROM orders WHERE id = ?`,
		query.OrderID().Bytes(),
	).Row()
	if err := row.Err(); err != nil {
		return OrderView{}, storeError("select order", err)
	}

	view, err := scanOrderView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderView{}, storeError("select order", err)
	}

	return view, nil
}
