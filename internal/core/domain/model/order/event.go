package order

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventPlaced    EventType = "order.placed"
	EventCompleted EventType = "order.completed"
	EventCanceled  EventType = "order.canceled"
	EventExpired   EventType = "order.expired"
)

// Event records that an order reached a new state.
type Event struct {
	Type       EventType
	OrderID    kernel.UUID
	UserID     kernel.UUID
	FoodID     kernel.UUID
	Status     Status
	OccurredAt time.Time
}

// NewEvent snapshots o. OccurredAt is the order's updatedAt, so the event carries
// the same instant the store recorded.
func NewEvent(t EventType, o *Order) Event {
	return Event{
		Type:       t,
		OrderID:    o.ID(),
		UserID:     o.UserID(),
		FoodID:     o.FoodID(),
		Status:     o.Status(),
		OccurredAt: o.UpdatedAt(),
	}
}
