package http

import (
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	FoodID          string `json:"foodId"`
	UserID          string `json:"userId"`
	ExternalOrderID string `json:"externalOrderId"`
	UserAddressID   string `json:"userAddressId"`
	PaymentMode     string `json:"paymentMode"`
}

// Order is the wire form of an order.
type Order struct {
	ID              openapi_types.UUID `json:"id"`
	FoodID          openapi_types.UUID `json:"foodId"`
	UserID          openapi_types.UUID `json:"userId"`
	ExternalOrderID string             `json:"externalOrderId"`
	UserAddressID   string             `json:"userAddressId"`
	PaymentMode     string             `json:"paymentMode"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ListOrdersParams are the query parameters of GET /orders.
type ListOrdersParams struct {
	UserID *openapi_types.UUID
	Status *string
	Limit  *int
}

// NewFood is the body of POST /foods.
type NewFood struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Food is the wire form of a catalog item. Price is a decimal string.
type Food struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Image       string             `json:"image"`
	Category    string             `json:"category"`
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:              o.ID().Bytes(),
		FoodID:          o.FoodID().Bytes(),
		UserID:          o.UserID().Bytes(),
		ExternalOrderID: o.ExternalOrderID(),
		UserAddressID:   o.UserAddressID(),
		PaymentMode:     o.PaymentMode().String(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) Order {
	return Order{
		ID:              v.ID.Bytes(),
		FoodID:          v.FoodID.Bytes(),
		UserID:          v.UserID.Bytes(),
		ExternalOrderID: v.ExternalOrderID,
		UserAddressID:   v.UserAddressID,
		PaymentMode:     v.PaymentMode,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func foodFromDomain(f *food.Food) Food {
	return Food{
		ID:          f.ID().Bytes(),
		Name:        f.Name(),
		Description: f.Description(),
		Price:       f.Price(),
		Image:       f.Image(),
		Category:    f.Category().String(),
	}
}

func foodFromView(v queries.FoodView) Food {
	return Food{
		ID:          v.ID.Bytes(),
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Image:       v.Image,
		Category:    v.Category,
	}
}
