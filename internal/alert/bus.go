package alert

import (
	"fmt"
	"sync"

	"github.com/rzbill/stockd/internal/product"
	logpkg "github.com/rzbill/stockd/pkg/log"
)

// Bus tracks the set of live subscribers and fans alert events out to
// them. Subscriber-set mutation is serialized by one mutex, independent
// of product-table locking.
type Bus struct {
	logger logpkg.Logger

	mu   sync.Mutex
	subs map[string]*Session
}

// New returns a Bus using the provided logger (nil for a default).
func New(logger logpkg.Logger) *Bus {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("alert"))
	}
	return &Bus{logger: logger, subs: make(map[string]*Session)}
}

// Subscribe registers a new session with the given threshold. The backlog
// is queued ahead of any live event, so callers can hand over a snapshot
// of pre-existing low-stock state atomically with registration.
func (b *Bus) Subscribe(threshold int64, backlog []Event) *Session {
	s := newSession(b, threshold, backlog)
	b.mu.Lock()
	b.subs[s.id] = s
	n := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug("alert.subscribe",
		logpkg.Str("session", s.id),
		logpkg.Int64("threshold", threshold),
		logpkg.Int("backlog", len(backlog)),
		logpkg.Int("subscribers", n),
	)
	return s
}

// Publish appends an event to every registered session whose threshold
// admits the product's current quantity. Fan-out is O(N) queue appends
// and never blocks on slow consumers.
func (b *Bus) Publish(change product.StockChange, current product.Product) {
	ev := Event{Product: current, Message: Message(current)}
	b.mu.Lock()
	delivered := 0
	for _, s := range b.subs {
		if current.Quantity <= s.threshold {
			s.push(ev)
			delivered++
		}
	}
	b.mu.Unlock()
	b.logger.Debug("alert.publish",
		logpkg.Str("product", current.ID),
		logpkg.Int64("delta", change.Delta),
		logpkg.Int64("quantity", current.Quantity),
		logpkg.Int("delivered", delivered),
	)
}

// Unsubscribe removes the session from the active set and closes it.
// Idempotent; safe with a nil session.
func (b *Bus) Unsubscribe(s *Session) {
	if s == nil {
		return
	}
	b.mu.Lock()
	delete(b.subs, s.id)
	b.mu.Unlock()
	s.close()
}

// Subscribers returns the number of registered sessions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Message renders the human-readable alert text for a product snapshot.
func Message(p product.Product) string {
	return fmt.Sprintf("low stock: %s (qty=%d)", p.Name, p.Quantity)
}
