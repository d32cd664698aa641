package commands

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand is a customer's request to buy one food item.
//
// The identifiers arrive as strings from the transport and are parsed here so that
// every malformed field is reported in one error:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), req.FoodID, req.UserID, req.ExternalOrderID, req.UserAddressID, req.PaymentMode)
//	if err != nil {
//	    return err // errs.IsValidation(err) == true
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	foodID          kernel.UUID
	userID          kernel.UUID
	externalOrderID string
	userAddressID   string
	paymentMode     order.PaymentMode

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the request. Reference strings are checked again
// by the Order aggregate; here they only need to be present.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	foodID, userID, externalOrderID, userAddressID, paymentMode string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFoodID(foodID),
		cmd.setUserID(userID),
		cmd.setExternalOrderID(externalOrderID),
		cmd.setUserAddressID(userAddressID),
		cmd.setPaymentMode(paymentMode),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c PlaceOrderCommand) FoodID() kernel.UUID { return c.foodID }
func (c PlaceOrderCommand) UserID() kernel.UUID { return c.userID }
func (c PlaceOrderCommand) ExternalOrderID() string { return c.externalOrderID }
func (c PlaceOrderCommand) UserAddressID() string { return c.userAddressID }
func (c PlaceOrderCommand) PaymentMode() order.PaymentMode { return c.paymentMode }

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setFoodID(raw string) error {
	id, err := parseID("foodId", raw)
	if err != nil {
		return err
	}
	c.foodID = id
	return nil
}

func (c *PlaceOrderCommand) setUserID(raw string) error {
	id, err := parseID("userId", raw)
	if err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *PlaceOrderCommand) setExternalOrderID(v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError("externalOrderId")
	}
	c.externalOrderID = v
	return nil
}

func (c *PlaceOrderCommand) setUserAddressID(v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError("userAddressId")
	}
	c.userAddressID = v
	return nil
}

func (c *PlaceOrderCommand) setPaymentMode(raw string) error {
	mode, err := order.ParsePaymentMode(raw)
	if err != nil {
		return err
	}
	c.paymentMode = mode
	return nil
}

// parseID parses a named identifier, reporting errors under name.
func parseID(name, raw string) (kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
