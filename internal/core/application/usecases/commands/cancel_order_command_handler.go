package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// CancelOrderCommandHandler moves a pending order to Canceled on request.
// Time-based cancellation goes through ExpirePendingOrdersCommandHandler instead.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        Clock
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	now Clock,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        now,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle cancels the order. Canceling twice fails the second time with an
// InvalidTransitionError and leaves the order canceled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	canceled, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), cancelTransition, h.now())
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, order.NewEvent(order.EventCanceled, canceled))
	return canceled, nil
}
