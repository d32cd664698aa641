package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// PlaceOrderCommandHandler creates pending orders.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher, time.Now, logger)
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // the referenced food does not exist
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        Clock
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// publisher may be nil when events are not wired.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	now Clock,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        now,
		logger:     logger.With("component", "place_order_handler"),
	}
}

// Handle builds a pending order with createdAt == updatedAt == now and inserts it.
// Nothing is written when the order fails validation.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.FoodID(),
		cmd.UserID(),
		cmd.ExternalOrderID(),
		cmd.UserAddressID(),
		cmd.PaymentMode(),
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, order.NewEvent(order.EventPlaced, placed))
	return placed, nil
}
