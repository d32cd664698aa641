package queries

import (
	"context"

	"foodorder/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the matching orders ordered by created_at descending, then id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `SELECT` + orderColumns + ` FROM orders WHERE user_id = ?`
	args := []any{query.UserID().Bytes()}
	if query.Status() != order.Unknown {
		sqlText += ` AND status = ?`
		args = append(args, query.Status().String())
	}
	sqlText += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, storeError("select orders", err)
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, storeError("scan orders", scanErr)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("select orders", err)
	}

	return views, nil
}
