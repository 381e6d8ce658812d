// Package product implements the authoritative product table.
//
// # Overview
//
// The store keeps the full table in memory, guarded by one RWMutex, and
// persists every mutation to Pebble before it becomes visible to readers.
// Keys are lexicographically ordered so a single range scan restores the
// table in creation order at startup:
//   - inv/product/m           (table metadata: lastSeq)
//   - inv/product/e/{seq_be8} (one JSON-encoded product record per entry)
//
// A mutation commits its batch first and only then applies the change to
// the in-memory table. A failed save therefore leaves readers on the last
// durably-saved state; nothing needs to be unwound.
//
// API surface (internal)
//
//	s, _ := product.Open(db, logger)
//	p, _ := s.Create("Widget", 10)
//	p, ch, _ := s.UpdateQuantity(p.ID, -6)
//	items := s.List(0, 0) // creation order, all remaining
//	removed, _ := s.Remove(p.ID)
//	_ = ch // consumed by the alert path, never persisted
package product
