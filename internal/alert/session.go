package alert

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/rzbill/stockd/internal/product"
)

// Event is one low-stock alert: a snapshot of the product at event time
// plus a human-readable message. Events are values; they are not retained
// after delivery.
type Event struct {
	Product product.Product `json:"product"`
	Message string          `json:"message"`
}

// State is the session lifecycle state.
type State int

const (
	// StateOpen accepts new events.
	StateOpen State = iota
	// StateDraining stops new appends but lets the consumer finish the
	// queued backlog.
	StateDraining
	// StateClosed is terminal; the queue is discarded.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrSessionClosed is returned by Next once a session has no further
// events to deliver.
var ErrSessionClosed = errors.New("alert: session closed")

// Session is one subscriber's handle. The Bus appends to its queue;
// the owning transport drains it through Next.
type Session struct {
	id        string
	threshold int64
	bus       *Bus

	mu       sync.Mutex
	queue    []Event
	notifyCh chan struct{}
	state    State
}

func newSession(bus *Bus, threshold int64, backlog []Event) *Session {
	s := &Session{
		id:        uuid.NewString(),
		threshold: threshold,
		bus:       bus,
		notifyCh:  make(chan struct{}),
	}
	s.queue = append(s.queue, backlog...)
	return s
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string { return s.id }

// Threshold returns the subscriber's alert threshold.
func (s *Session) Threshold() int64 { return s.threshold }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// push appends events while the session is open, then wakes waiters.
func (s *Session) push(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return
	}
	s.queue = append(s.queue, ev)
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
}

// Next blocks until an event is available, the context is cancelled, or
// the session reaches the end of its stream. After Close (or a drained
// backlog following Drain) it returns ErrSessionClosed.
func (s *Session) Next(ctx context.Context) (Event, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return ev, nil
		}
		if s.state != StateOpen {
			s.mu.Unlock()
			return Event{}, ErrSessionClosed
		}
		ch := s.notifyCh
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-ch:
		}
	}
}

// Drain half-closes the session: no further events are accepted, but the
// queued backlog stays readable. Next returns ErrSessionClosed once the
// backlog is exhausted.
func (s *Session) Drain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return
	}
	s.state = StateDraining
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
}

// Close terminates the session and removes it from the bus. Idempotent.
func (s *Session) Close() {
	s.bus.Unsubscribe(s)
}

// close marks the session closed, discards the queue, and wakes waiters.
// Only the bus calls it, after unregistering the session.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	s.queue = nil
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
}
