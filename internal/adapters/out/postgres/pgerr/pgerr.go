// Package pgerr classifies PostgreSQL errors reported by lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	ForeignKeyViolation pq.ErrorCode = "23503"
	UniqueViolation     pq.ErrorCode = "23505"
	CheckViolation      pq.ErrorCode = "23514"
)

// Code returns the SQLSTATE of err, or "" when err is not a server error.
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// Constraint returns the name of the violated constraint, if any.
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
