package order

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// PaymentMode is how the customer pays. It is fixed at creation.
type PaymentMode string

const (
	Cash PaymentMode = "cash"
	Card PaymentMode = "card"
	UPI  PaymentMode = "upi"
)

// ParsePaymentMode accepts the payment mode names case-insensitively, so the
// legacy "UPI" spelling maps to UPI.
func ParsePaymentMode(s string) (PaymentMode, error) {
	mode := PaymentMode(strings.ToLower(strings.TrimSpace(s)))
	if err := mode.Validate(); err != nil {
		if s == "" {
			return "", errs.NewValueIsRequiredError("paymentMode")
		}
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMode", fmt.Errorf("%q is not a payment mode", s))
	}
	return mode, nil
}

// Validate checks that m is one of the enumerated modes.
func (m PaymentMode) Validate() error {
	switch m {
	case Cash, Card, UPI:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMode", fmt.Errorf("%q is not a payment mode", string(m)))
	}
}

func (m PaymentMode) String() string {
	return string(m)
}
