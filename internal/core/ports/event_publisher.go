package ports

import (
	"context"

	"foodorder/internal/core/domain/model/order"
)

// EventPublisher delivers order lifecycle events to downstream consumers.
// It is called after the state change is durable; a failed publish never
// undoes it.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
