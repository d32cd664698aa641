package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// ExpirePendingOrdersResult describes one sweep.
type ExpirePendingOrdersResult struct {
	Cutoff  time.Time
	Expired []*order.Order
}

// ExpirePendingOrdersCommandHandler is the bulk path of the expiry rule. It does
// not load orders one by one: a single conditional update whose predicate requires
// status == pending does the work, so an order completed or canceled in the
// meantime is simply not matched.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        Clock
	logger     *slog.Logger
}

func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	now Clock,
	logger *slog.Logger,
) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        now,
		logger:     logger.With("component", "expire_pending_orders_handler"),
	}
}

// Handle cancels pending orders created at or before now - threshold. The cutoff is
// always derived from the current time, so a missed run is caught up by the next.
func (h ExpirePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePendingOrdersCommand,
) (ExpirePendingOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ExpirePendingOrdersResult{}, err
	}

	now := kernel.Timestamp(h.now())
	result := ExpirePendingOrdersResult{Cutoff: now.Add(-cmd.Threshold())}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().CancelPendingCreatedBefore(ctx, result.Cutoff, now)
	if err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}
	result.Expired = expired

	events := make([]order.Event, 0, len(expired))
	for _, o := range expired {
		events = append(events, order.NewEvent(order.EventExpired, o))
	}
	publish(ctx, h.publisher, h.logger, events...)

	return result, nil
}
