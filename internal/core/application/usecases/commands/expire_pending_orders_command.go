package commands

import (
	"errors"
	"time"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
		"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
	)
)

// ExpirePendingOrdersCommand cancels every order that stayed pending longer than
// threshold.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand requires a positive threshold.
func NewExpirePendingOrdersCommand(threshold time.Duration) (ExpirePendingOrdersCommand, error) {
	if threshold <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("threshold", threshold, "1ns", "unbounded")
	}

	return ExpirePendingOrdersCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) Threshold() time.Duration {
	return c.threshold
}
