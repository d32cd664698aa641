// Package order provides the Order aggregate of the food ordering service and the
// state machine that governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, references and timestamps
//   - Status: the lifecycle state machine
//   - PaymentMode: the enumeration of accepted payment modes
//
// Key business rules:
//   - An order references exactly one food item and one user; both are required
//   - New orders start Pending with createdAt == updatedAt
//   - Pending -> Completed (explicit confirmation) and Pending -> Canceled (user,
//     operator or expiry) are the only transitions; Completed and Canceled are terminal
//   - Every transition refreshes updatedAt and createdAt <= updatedAt always holds
//
// The in-memory transitions only decide whether a change is allowed. Persisting it
// is a conditional update in the store, which is what linearizes concurrent
// transitions of the same order.
package order
