package queries

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID              kernel.UUID
	FoodID          kernel.UUID
	UserID          kernel.UUID
	ExternalOrderID string
	UserAddressID   string
	PaymentMode     string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const orderColumns = `
	id,
	food_id,
	user_id,
	external_order_id,
	user_address_id,
	payment_mode,
	status,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (OrderView, error) {
	var (
		view                 OrderView
		id, foodID, userID   uuid.UUID
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(
		&id,
		&foodID,
		&userID,
		&view.ExternalOrderID,
		&view.UserAddressID,
		&view.PaymentMode,
		&view.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return OrderView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.FoodID, err = kernel.UUIDFromBytes(foodID[:]); err != nil {
		return OrderView{}, err
	}
	if view.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderView{}, err
	}
	view.CreatedAt = createdAt.UTC()
	view.UpdatedAt = updatedAt.UTC()

	return view, nil
}

func storeError(operation string, err error) error {
	return errs.NewStoreErrorWithCause(operation, err)
}
