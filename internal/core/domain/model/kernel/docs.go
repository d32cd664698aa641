// Package kernel provides the shared value objects of the ordering domain.
//
// UUID wraps github.com/google/uuid so that identifiers of orders, foods and users
// cannot be used before they have been validated: the zero value is rejected by
// Validate and every constructor refuses the nil UUID.
package kernel
