package inventory

import (
	"context"
	"errors"
	"sync"

	"github.com/rzbill/stockd/internal/alert"
	"github.com/rzbill/stockd/internal/product"
	logpkg "github.com/rzbill/stockd/pkg/log"
)

// DefaultThreshold is the domain's low-stock threshold. Subscribers that
// do not give their own threshold stream against this one.
const DefaultThreshold int64 = 5

// AlertSink abstracts the transport side of an alert stream. The service
// pushes filtered events into the sink; the sink owns serialization and
// reports transport death through its context.
type AlertSink interface {
	Send(alert.Event) error
	Context() context.Context
	Flush() error
}

// Service orchestrates the product store and the alert bus behind the
// public inventory operations. Each transport adapter holds one Service.
type Service struct {
	store  *product.Store
	bus    *alert.Bus
	logger logpkg.Logger

	// subMu serializes stock mutations against subscriber registration.
	// UpdateStock holds it across (mutate, publish); StreamAlerts holds
	// it across (snapshot, subscribe). That pairing is what makes the
	// snapshot-to-live handover exactly-once: a mutation is either fully
	// reflected in the snapshot or fully delivered live, never both and
	// never neither.
	subMu sync.Mutex

	threshold int64
}

// New returns a Service over the given store and bus. A non-positive
// threshold falls back to DefaultThreshold.
func New(store *product.Store, bus *alert.Bus, threshold int64, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("inventory"))
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{store: store, bus: bus, logger: logger, threshold: threshold}
}

// Threshold returns the service's default alert threshold.
func (s *Service) Threshold() int64 { return s.threshold }

// AddProduct creates a product. Creation never triggers an alert; a
// product born low-stock is picked up by subscriber snapshots.
func (s *Service) AddProduct(name string, quantity int64) (product.Product, error) {
	return s.store.Create(name, quantity)
}

// GetProduct returns the product with the given id.
func (s *Service) GetProduct(id string) (product.Product, error) {
	return s.store.Get(id)
}

// ListProducts returns products in creation order. See product.Store.List
// for offset/limit semantics.
func (s *Service) ListProducts(offset, limit int) []product.Product {
	return s.store.List(offset, limit)
}

// RemoveProduct deletes a product, reporting whether it existed.
func (s *Service) RemoveProduct(id string) (bool, error) {
	return s.store.Remove(id)
}

// UpdateStock applies a signed delta to a product's quantity and fans the
// resulting change out to matching subscribers. Mutation and publish are
// one step under subMu; store errors propagate unchanged and publish
// nothing.
func (s *Service) UpdateStock(id string, delta int64) (product.Product, error) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	p, change, err := s.store.UpdateQuantity(id, delta)
	if err != nil {
		return product.Product{}, err
	}
	s.bus.Publish(change, p)
	return p, nil
}

// StreamAlerts registers a live alert subscription. Before any live event,
// the session's queue is seeded with a snapshot alert for every product
// already at or below the threshold. A non-positive threshold falls back
// to the service default. The caller owns the session and must Close it.
func (s *Service) StreamAlerts(threshold int64) *alert.Session {
	if threshold <= 0 {
		threshold = s.threshold
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	var backlog []alert.Event
	for _, p := range s.store.List(0, 0) {
		if p.Quantity <= threshold {
			backlog = append(backlog, alert.Event{Product: p, Message: alert.Message(p)})
		}
	}
	sess := s.bus.Subscribe(threshold, backlog)
	s.logger.Debug("alerts.stream",
		logpkg.Str("session", sess.ID()),
		logpkg.Int64("threshold", threshold),
		logpkg.Int("snapshot", len(backlog)),
	)
	return sess
}

// ServeAlerts pumps a subscription into a sink until the caller's context
// or the sink's context is cancelled. filterExpr is an optional CEL
// expression over product_id, name, quantity and message; events it
// rejects are dropped before Send. A dead sink or cancelled context is a
// normal close, not an error.
func (s *Service) ServeAlerts(ctx context.Context, threshold int64, filterExpr string, sink AlertSink) error {
	filter, err := newCELFilter(filterExpr)
	if err != nil {
		return err
	}

	sess := s.StreamAlerts(threshold)
	defer sess.Close()

	// Fold the sink's context into the caller's so either side tears
	// the stream down.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sink.Context(), cancel)
	defer stop()

	for {
		ev, err := sess.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, alert.ErrSessionClosed) {
				return nil
			}
			return err
		}
		if !filter.Eval(ev) {
			continue
		}
		if err := sink.Send(ev); err != nil {
			s.logger.Debug("alerts.sink_send_failed", logpkg.Str("session", sess.ID()), logpkg.Err(err))
			return nil
		}
		_ = sink.Flush()
	}
}
