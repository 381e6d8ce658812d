package product

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - inv/product/m            (table metadata: lastSeq)
// - inv/product/e/{seq_be8}  (entries, big-endian seq preserves creation order)

var (
	entryPrefix = []byte("inv/product/e/")
	metaKey     = []byte("inv/product/m")
)

// keyEntry builds the entry key with a big-endian sequence for ordering.
func keyEntry(seq uint64) []byte {
	k := make([]byte, 0, len(entryPrefix)+8)
	k = append(k, entryPrefix...)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return append(k, b[:]...)
}

// keyMeta builds the table metadata key.
func keyMeta() []byte { return metaKey }

// entryBounds returns the [low, high) scan range covering all entries.
func entryBounds() (low, high []byte) {
	low = append([]byte(nil), entryPrefix...)
	high = append(append([]byte(nil), entryPrefix...), 0xFF)
	return low, high
}

// seqFromEntryKey extracts the sequence from an entry key.
func seqFromEntryKey(k []byte) uint64 {
	if len(k) < len(entryPrefix)+8 {
		return 0
	}
	return binary.BigEndian.Uint64(k[len(entryPrefix):])
}
