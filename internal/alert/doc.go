// Package alert implements the low-stock alert bus.
//
// # Overview
//
// The Bus owns the set of live subscribers. Publish appends an Event to
// the queue of every subscriber whose threshold admits the product's new
// quantity; it never blocks on slow consumers, because delivery is a
// queue append and draining is the consumer's job. Each Session owns one
// unbounded FIFO queue and a notify channel that is closed and replaced
// on every append, so a blocked Next wakes without lost-wakeup races.
//
// Sessions move Open -> Draining -> Closed. Draining stops new appends
// but lets a consumer finish the backlog; Closed is terminal, discards
// the queue, and removes the session from the Bus.
//
// API surface (internal)
//
//	bus := alert.New(logger)
//	sess := bus.Subscribe(5, backlog) // backlog delivered before live events
//	ev, err := sess.Next(ctx)         // blocks until an event or cancellation
//	bus.Unsubscribe(sess)             // idempotent
package alert
