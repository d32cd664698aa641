package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// CompleteOrderCommandHandler moves a pending order to Completed.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        Clock
	logger     *slog.Logger
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	now Clock,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        now,
		logger:     logger.With("component", "complete_order_handler"),
	}
}

// Handle completes the order. It fails with an ObjectNotFoundError for unknown ids
// and with an InvalidTransitionError when the order is terminal or a concurrent
// transition (typically the expiry sweep) got there first.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	completed, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), completeTransition, h.now())
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, order.NewEvent(order.EventCompleted, completed))
	return completed, nil
}
