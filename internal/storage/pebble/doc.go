// Package pebblestore wraps a Pebble database with the durability policy
// used by the product table.
//
// The wrapper keeps a single decision in one place: whether a committed
// batch forces a WAL fsync before the write is acknowledged. The product
// store commits every mutation through CommitBatch, so FsyncModeAlways
// gives the "durably saved before visible" contract; FsyncModeInterval
// trades a small group-commit window for throughput.
package pebblestore
