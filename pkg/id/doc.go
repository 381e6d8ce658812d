// Package id generates product identifiers.
//
// # Format
//
// An ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence],
// rendered as 32 hex characters. Byte-wise comparison preserves creation
// order, so ids double as creation-order sort keys.
//
// # Monotonicity
//
// The Generator guarantees per-process monotonicity: if the system clock
// regresses, it pins to the last seen millisecond and keeps incrementing
// the sequence; if the sequence would overflow within one millisecond, it
// waits for the next millisecond. Ids are therefore never reused, even
// after the product they named is removed.
//
// Usage
//
//	g := id.NewGenerator()
//	productID := g.Next().String()
package id
