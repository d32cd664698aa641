// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read flat views straight from the database.
package queries
