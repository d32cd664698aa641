package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

// ErrConcurrentTransition is the cause attached to an InvalidTransitionError when
// the order was still pending when read but another writer changed it first.
var ErrConcurrentTransition = errors.New("order was modified concurrently")

// orderTransition is a single-order status change: the action name for error
// reporting and the aggregate method that applies it.
type orderTransition struct {
	action string
	apply  func(o *order.Order, at time.Time) error
}

var (
	completeTransition = orderTransition{action: "complete", apply: (*order.Order).Complete}
	cancelTransition   = orderTransition{action: "cancel", apply: (*order.Order).Cancel}
)

// transitionOrder loads the order, applies the transition in memory and persists it
// with a conditional update guarded by the status that was read. Losing the race
// to another writer surfaces as an InvalidTransitionError, never as an overwrite.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	id kernel.UUID,
	t orderTransition,
	now time.Time,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	observed := o.Status()
	if err = t.apply(o, now); err != nil {
		return nil, err
	}

	applied, err := repo.UpdateStatusIf(ctx, o, observed)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errs.NewInvalidTransitionErrorWithCause(t.action, observed.String(), ErrConcurrentTransition)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
