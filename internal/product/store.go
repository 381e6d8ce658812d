package product

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/rzbill/stockd/internal/storage/pebble"
	"github.com/rzbill/stockd/pkg/apperr"
	"github.com/rzbill/stockd/pkg/id"
	logpkg "github.com/rzbill/stockd/pkg/log"
)

// Product is one inventory item. Identity is ID, generated on creation
// and immutable afterward. Quantity never goes below zero.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// StockChange describes one successful quantity mutation. It is handed to
// the alert path and discarded; it is never persisted.
type StockChange struct {
	ProductID string    `json:"productId"`
	Delta     int64     `json:"delta"`
	Timestamp time.Time `json:"timestamp"`
}

// record is the persisted form of a product entry.
type record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

type entry struct {
	prod      Product
	seq       uint64
	createdMs int64
}

// Store owns the product table. All mutations are serialized by one mutex
// and committed to Pebble before they become visible to readers.
type Store struct {
	db     *pebblestore.DB
	gen    *id.Generator
	logger logpkg.Logger

	mu      sync.RWMutex
	byID    map[string]entry
	order   []string // product ids in creation order
	lastSeq uint64
}

// Open loads the table from db and returns a ready Store.
func Open(db *pebblestore.DB, logger logpkg.Logger) (*Store, error) {
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel)).With(logpkg.Component("product"))
	}
	s := &Store{
		db:     db,
		gen:    id.NewGenerator(),
		logger: logger,
		byID:   make(map[string]entry),
	}
	if err := s.load(); err != nil {
		return nil, apperr.WrapInternal(err, "product.Open", "load product table")
	}
	return s, nil
}

// load rebuilds the in-memory table from a single range scan.
func (s *Store) load() error {
	low, high := entryBounds()
	it, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return err
	}
	defer func() { _ = it.Close() }()

	for ok := it.First(); ok; ok = it.Next() {
		seq := seqFromEntryKey(it.Key())
		var rec record
		if err := json.Unmarshal(it.Value(), &rec); err != nil {
			// Skip corrupt entries; a crash mid-write is an accepted risk.
			s.logger.Warn("skipping corrupt product record", logpkg.Int64("seq", int64(seq)), logpkg.Err(err))
			continue
		}
		s.byID[rec.ID] = entry{
			prod:      Product{ID: rec.ID, Name: rec.Name, Quantity: rec.Quantity},
			seq:       seq,
			createdMs: rec.CreatedAtMs,
		}
		s.order = append(s.order, rec.ID)
		if seq > s.lastSeq {
			s.lastSeq = seq
		}
	}

	if meta, err := s.db.Get(keyMeta()); err == nil && len(meta) >= 8 {
		if last := binary.BigEndian.Uint64(meta[:8]); last > s.lastSeq {
			s.lastSeq = last
		}
	}
	return nil
}

// Create adds a product with a fresh id. The quantity must be non-negative.
func (s *Store) Create(name string, quantity int64) (Product, error) {
	if quantity < 0 {
		return Product{}, apperr.InvalidArgument("product.Create", "quantity must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.lastSeq + 1
	p := Product{ID: s.gen.Next().String(), Name: name, Quantity: quantity}
	rec := record{ID: p.ID, Name: p.Name, Quantity: p.Quantity, CreatedAtMs: time.Now().UnixMilli()}
	if err := s.commit(func(b *pebble.Batch) error {
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := b.Set(keyEntry(seq), val, nil); err != nil {
			return err
		}
		return b.Set(keyMeta(), seqBytes(seq), nil)
	}); err != nil {
		return Product{}, apperr.WrapInternal(err, "product.Create", "save product table")
	}

	s.byID[p.ID] = entry{prod: p, seq: seq, createdMs: rec.CreatedAtMs}
	s.order = append(s.order, p.ID)
	s.lastSeq = seq
	return p, nil
}

// Get returns the product with the given id.
func (s *Store) Get(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return Product{}, apperr.NotFound("product.Get", "product not found")
	}
	return e.prod, nil
}

// List returns products in creation order. A non-positive limit means
// "all remaining"; an offset beyond the table yields an empty slice.
func (s *Store) List(offset, limit int) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.order) {
		return nil
	}
	ids := s.order[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]Product, 0, len(ids))
	for _, pid := range ids {
		out = append(out, s.byID[pid].prod)
	}
	return out
}

// UpdateQuantity applies delta to the product's quantity. The check and
// write run under the store mutex, so no interleaving can observe or
// produce a negative quantity.
func (s *Store) UpdateQuantity(id string, delta int64) (Product, StockChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return Product{}, StockChange{}, apperr.NotFound("product.UpdateQuantity", "product not found")
	}
	newQuantity := e.prod.Quantity + delta
	if newQuantity < 0 {
		return Product{}, StockChange{}, apperr.InvalidArgument("product.UpdateQuantity", "resulting quantity must be non-negative")
	}

	updated := e.prod
	updated.Quantity = newQuantity
	rec := record{ID: updated.ID, Name: updated.Name, Quantity: updated.Quantity, CreatedAtMs: e.createdMs}
	if err := s.commit(func(b *pebble.Batch) error {
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Set(keyEntry(e.seq), val, nil)
	}); err != nil {
		return Product{}, StockChange{}, apperr.WrapInternal(err, "product.UpdateQuantity", "save product table")
	}

	e.prod = updated
	s.byID[id] = e
	change := StockChange{ProductID: id, Delta: delta, Timestamp: time.Now()}
	return updated, change, nil
}

// Remove deletes the product. Removing a missing id is not an error and
// reports false.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	if err := s.commit(func(b *pebble.Batch) error {
		return b.Delete(keyEntry(e.seq), nil)
	}); err != nil {
		return false, apperr.WrapInternal(err, "product.Remove", "save product table")
	}

	delete(s.byID, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// commit runs fill against a fresh batch and commits it with the store's
// fsync policy. Callers apply in-memory changes only after it succeeds.
func (s *Store) commit(fill func(*pebble.Batch) error) error {
	b := s.db.NewBatch()
	defer func() { _ = b.Close() }()
	if err := fill(b); err != nil {
		return err
	}
	return s.db.CommitBatch(context.Background(), b)
}

func seqBytes(seq uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return b[:]
}
