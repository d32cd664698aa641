package order

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements the state machine every order follows; transitions only move
// forward and never leave a terminal state.
//
// State transitions:
//
//	          ┌──> Completed
//	Pending ──┤
//	          └──> Canceled
//
// Completed and Canceled are terminal. Status is persisted and sent on the wire
// by its lowercase name.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. The order awaits confirmation and is subject
	// to the expiry rule.
	Pending

	// Completed indicates the order was confirmed. Terminal.
	Completed

	// Canceled indicates the order was canceled by a user, an operator or the
	// expiry sweeper. Terminal.
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Completed: "completed",
	Canceled:  "canceled",
}

// ParseStatus converts the persisted or wire name of a status.
//
// Parameters:
//   - s: "pending", "completed" or "canceled", in any case, surrounding spaces ignored
//
// Returns:
//   - the matching Status
//   - Unknown and a ValueIsInvalidError for any other input
//
// Example:
//
//	status, err := order.ParseStatus("Canceled") // order.Canceled, nil
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Completed, Canceled.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - ValueIsInvalidError naming "status" otherwise
//
// RestoreOrder uses it on values read back from the database.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name used on the wire and in the database.
//
// Returns:
//   - "pending", "completed" or "canceled" for valid statuses
//   - "unknown" for invalid status values
//
// Example:
//
//	fmt.Println(order.Pending) // Output: pending
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// Complete returns the status that follows a confirmation without changing s.
//
// Returns:
//   - Completed, nil when s is Pending
//   - Unknown and an InvalidTransitionError from any other status
//
// Example:
//
//	next, err := order.Canceled.Complete() // Unknown, "cannot complete from status canceled"
func (s Status) Complete() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionError("complete", s.String())
	}
	return Completed, nil
}

// Cancel returns the status that follows a cancellation without changing s.
//
// Returns:
//   - Canceled, nil when s is Pending
//   - Unknown and an InvalidTransitionError from any other status
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionError("cancel", s.String())
	}
	return Canceled, nil
}
