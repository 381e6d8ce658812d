// Package apperr provides classified errors for stockd operations.
//
// Every error surfaced by the inventory core carries one of three kinds:
//   - InvalidArgument: the caller supplied a value the operation rejects
//     (negative quantity, update that would drive a quantity below zero).
//   - NotFound: the operation referenced an unknown product id.
//   - Internal: a durable-save or infrastructure failure.
//
// Transports map kinds to their own representations (HTTP status codes,
// CLI exit messages) using the Is* predicates.
package apperr
