package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists one user's orders, newest first. An empty status lists
// every status and a zero limit means DefaultListLimit.
type ListOrdersQuery struct {
	userID kernel.UUID
	status order.Status
	limit  int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(userID kernel.UUID, status string, limit int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		userID: userID,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}

	var statusErr, limitErr error
	userErr := userID.Validate()
	if userErr != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("userId", userErr)
	}
	if status != "" {
		q.status, statusErr = order.ParseStatus(status)
	}
	switch {
	case limit == 0:
		q.limit = DefaultListLimit
	case limit < 0 || limit > MaxListLimit:
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	if err := errors.Join(userErr, statusErr, limitErr); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) UserID() kernel.UUID { return q.userID }

// Status is order.Unknown when no status filter was requested.
func (q ListOrdersQuery) Status() order.Status { return q.status }
func (q ListOrdersQuery) Limit() int            { return q.limit }
