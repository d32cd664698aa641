package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	// MaxReferenceLength bounds the opaque client-supplied strings
	// (externalOrderId, userAddressId).
	MaxReferenceLength = 128
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is a customer's request to purchase a food item. It is the aggregate root
// of the ordering domain and owns the lifecycle from placement to completion or
// cancellation.
//
// Order follows these invariants:
//   - id, foodID and userID are valid identifiers
//   - externalOrderID and userAddressID are non-empty and at most MaxReferenceLength long
//   - paymentMode is one of the enumerated modes
//   - status only moves forward through the state machine
//   - createdAt <= updatedAt
//
// Orders are never deleted; the store keeps them as an audit trail.
type Order struct {
	id              kernel.UUID
	foodID          kernel.UUID
	userID          kernel.UUID
	externalOrderID string
	userAddressID   string
	paymentMode     PaymentMode
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder places a new order. The order starts Pending with
// createdAt == updatedAt == now.
//
// Parameters:
//   - id: Identifier of the new order (must be valid UUID)
//   - foodID, userID: References to the ordered food and the customer
//   - externalOrderID, userAddressID: Opaque client references, trimmed, 1..MaxReferenceLength
//   - paymentMode: One of Cash, Card, UPI
//   - now: Placement time, truncated to microseconds in UTC
//
// Returns:
//   - *Order: The pending order if all validations pass
//   - error: Every validation failure joined with errors.Join
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), foodID, userID, "ext-1", "addr-9", order.Cash, time.Now())
//	if err != nil {
//	    // err joins every validation failure
//	}
func NewOrder(
	id, foodID, userID kernel.UUID,
	externalOrderID, userAddressID string,
	paymentMode PaymentMode,
	now time.Time,
) (*Order, error) {
	ts := kernel.Timestamp(now)
	o := &Order{
		status:    Pending,
		createdAt: ts,
		updatedAt: ts,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setFoodID(foodID),
		o.setUserID(userID),
		o.setExternalOrderID(externalOrderID),
		o.setUserAddressID(userAddressID),
		o.setPaymentMode(paymentMode),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. It applies the same field
// validation as NewOrder and additionally checks the status and timestamp invariants.
//
// Returns:
//   - *Order: The restored order
//   - error: ValueIsInvalidError for a bad status or updatedAt before createdAt,
//     ValueIsRequiredError for a zero createdAt, plus any field error
func RestoreOrder(
	id, foodID, userID kernel.UUID,
	externalOrderID, userAddressID string,
	paymentMode PaymentMode,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: kernel.Timestamp(createdAt),
		updatedAt: kernel.Timestamp(updatedAt),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setFoodID(foodID),
		o.setUserID(userID),
		o.setExternalOrderID(externalOrderID),
		o.setUserAddressID(userAddressID),
		o.setPaymentMode(paymentMode),
		o.setStatus(status),
		o.checkTimestamps(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
// This prevents bypassing validation by instantiating the struct directly.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for a nil or zero value order
//
// Repositories call it before writing an aggregate.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
//
// Parameters:
//   - other: The order to compare with
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or the IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier. It never changes.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// FoodID returns the ordered food item.
func (o *Order) FoodID() kernel.UUID {
	return o.foodID
}

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// ExternalOrderID returns the client's own reference for the order, trimmed.
func (o *Order) ExternalOrderID() string {
	return o.externalOrderID
}

// UserAddressID returns the opaque delivery address reference.
func (o *Order) UserAddressID() string {
	return o.userAddressID
}

// PaymentMode returns how the customer pays.
func (o *Order) PaymentMode() PaymentMode {
	return o.paymentMode
}

// Status returns the current position in the order lifecycle.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the placement time, in UTC at microsecond precision.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last status change, or CreatedAt while the
// order is still pending. It is never before CreatedAt.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Complete confirms a pending order and refreshes UpdatedAt.
//
// This method enforces the following business rules:
//   - Only a Pending order can be completed
//   - A terminal order is left unchanged
//
// Parameters:
//   - at: Time of the confirmation; a value before CreatedAt is clamped to it
//
// Returns:
//   - nil on success, with Status() == Completed
//   - *errs.InvalidTransitionError if the order is already terminal
//
// Example:
//
//	if err := o.Complete(time.Now()); errors.Is(err, errs.ErrInvalidTransition) {
//	    // the order was canceled or completed before
//	}
//
// Persisting the result takes the store's conditional update; another writer
// may have moved the order on meanwhile.
func (o *Order) Complete(at time.Time) error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.transition(next, at)
	return nil
}

// Cancel cancels a pending order and refreshes UpdatedAt.
//
// This method enforces the following business rules:
//   - Only a Pending order can be canceled
//   - Canceling twice fails and leaves the order Canceled
//
// Parameters:
//   - at: Time of the cancellation; a value before CreatedAt is clamped to it
//
// Returns:
//   - nil on success, with Status() == Canceled
//   - *errs.InvalidTransitionError if the order is already terminal
//
// Example:
//
//	if err := o.Cancel(now); err != nil {
//	    // handle invalid transition
//	}
func (o *Order) Cancel(at time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.transition(next, at)
	return nil
}

// transition applies next and refreshes updatedAt, never moving it before createdAt.
func (o *Order) transition(next Status, at time.Time) {
	ts := kernel.Timestamp(at)
	if ts.Before(o.createdAt) {
		ts = o.createdAt
	}
	o.status = next
	o.updatedAt = ts
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFoodID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("foodId", err)
	}
	o.foodID = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = id
	return nil
}

func (o *Order) setExternalOrderID(v string) error {
	v, err := reference("externalOrderId", v)
	if err != nil {
		return err
	}
	o.externalOrderID = v
	return nil
}

func (o *Order) setUserAddressID(v string) error {
	v, err := reference("userAddressId", v)
	if err != nil {
		return err
	}
	o.userAddressID = v
	return nil
}

func (o *Order) setPaymentMode(m PaymentMode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.paymentMode = m
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) checkTimestamps() error {
	if o.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if o.updatedAt.Before(o.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"updatedAt",
			fmt.Errorf("%s precedes createdAt %s", o.updatedAt.Format(time.RFC3339Nano), o.createdAt.Format(time.RFC3339Nano)),
		)
	}
	return nil
}

// reference trims and bounds an opaque client-supplied identifier.
func reference(name, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	if n := len(v); n > MaxReferenceLength {
		return "", errs.NewValueIsOutOfRangeError(name+" length", n, 1, MaxReferenceLength)
	}
	return v, nil
}
