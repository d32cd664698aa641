package kafka

import (
	"encoding/json"
	"time"

	"foodorder/internal/core/domain/model/order"
)

// EventMessage is the JSON payload written to the order events topic.
type EventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId,omitempty"`
	FoodID     string    `json:"foodId,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newEventMessage(e order.Event) EventMessage {
	msg := EventMessage{
		Type:       string(e.Type),
		OrderID:    e.OrderID.String(),
		Status:     e.Status.String(),
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.UserID.Validate() == nil {
		msg.UserID = e.UserID.String()
	}
	if e.FoodID.Validate() == nil {
		msg.FoodID = e.FoodID.String()
	}
	return msg
}

func encodeEvent(e order.Event) ([]byte, error) {
	return json.Marshal(newEventMessage(e))
}
