// Package food models the catalog entries an order can reference.
//
// The catalog is a thin collaborator of the ordering domain: a Food only has to
// exist so that orders can point at it. Prices are decimals so they never pick up
// binary floating point drift on their way to and from the store.
package food
