// Package ports defines the contracts between the ordering core and its
// infrastructure. Adapters in internal/adapters implement them; the application
// layer depends only on these interfaces.
package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderFilter narrows Find. Zero fields do not filter.
type OrderFilter struct {
	UserID kernel.UUID
	Status order.Status
	Limit  int
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Orders are never deleted and never rewritten wholesale: after insertion the only
// mutation is a status change, and every status change is conditional on the
// stored status still being the one the caller observed.
type OrderRepository interface {
	// Add persists a new order aggregate. An unknown food reference is reported
	// as an ObjectNotFoundError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Find returns the orders matching filter, newest first.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// UpdateStatusIf writes the aggregate's status and updatedAt only if the stored
	// status still equals expected. It reports false when zero rows matched, which
	// means a concurrent transition won.
	UpdateStatusIf(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// CancelPendingCreatedBefore cancels, in one statement, every order that is
	// still pending and was created at or before cutoff, stamping updatedAt with at.
	// It returns the orders it changed in their new state.
	CancelPendingCreatedBefore(ctx context.Context, cutoff, at time.Time) ([]*order.Order, error)
}
