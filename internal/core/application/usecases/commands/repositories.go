// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, then event publication once the change is durable.
package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// FoodRepoFactory provides access to food repository within a transaction.
	FoodRepoFactory interface {
		FoodRepository() ports.FoodRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FoodUoW manages transactions for catalog operations.
	FoodUoW interface {
		TxManager
		FoodRepoFactory
	}

	// FoodUoWFactory creates new food unit of work instances.
	FoodUoWFactory interface {
		Create() FoodUoW
	}
)

// Clock returns the current time. Handlers take it so tests can pin "now".
type Clock func() time.Time

// publish hands events to the publisher after commit. Failures are logged only:
// the state change is already durable.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, events ...order.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "failed to publish order events",
			"type", events[0].Type,
			"count", len(events),
			"error", err,
		)
	}
}
