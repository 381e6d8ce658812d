// Package inventory is the transport-agnostic facade over the product
// table and the alert bus. It owns the one critical ordering concern in
// the system: a stock mutation and its alert publish happen as a single
// step relative to subscriber registration, so a new subscriber's
// snapshot and its live stream never duplicate or drop an event.
package inventory
