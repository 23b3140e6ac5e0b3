package about

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrSelectorClosed = errors.New("selector closed")

const defaultQueueSize = 16

// Observer is called from the selector's owner goroutine for every applied
// transition, including re-selection of the current tab. It must not call
// back into the selector's Close.
type Observer func(from, to string)

type Option func(*Selector)

func WithObserver(fn Observer) Option {
	return func(s *Selector) { s.observer = fn }
}

// WithQueueSize bounds the number of accepted but unapplied requests.
func WithQueueSize(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// Selector tracks which catalog entry a single mounted panel displays.
// Selection changes are deferred: RequestSelect only enqueues, and a single
// owner goroutine applies requests in the order they were accepted.
type Selector struct {
	catalog   *Catalog
	observer  Observer
	queueSize int
	requests  chan string

	// serializes enqueueing so accept order equals apply order, and
	// orders Close after any in-flight enqueue
	sendMu sync.Mutex

	mu        sync.Mutex
	current   string
	requested uint64
	applied   uint64
	changed   chan struct{}

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewSelector(catalog *Catalog, opts ...Option) *Selector {
	s := &Selector{
		catalog:   catalog,
		queueSize: defaultQueueSize,
		current:   catalog.Initial(),
		changed:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.requests = make(chan string, s.queueSize)

	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Selector) loop() {
	defer s.wg.Done()
	for {
		select {
		case id := <-s.requests:
			s.apply(id)
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain applies whatever was accepted before Close. No sender can be in
// flight once done is closed, so the queue contents are final.
func (s *Selector) drain() {
	for {
		select {
		case id := <-s.requests:
			s.apply(id)
		default:
			return
		}
	}
}

func (s *Selector) apply(id string) {
	s.mu.Lock()
	from := s.current
	s.current = id
	s.mu.Unlock()

	// Settle waiters are released only once the observer has returned.
	if s.observer != nil {
		s.observer(from, id)
	}

	s.mu.Lock()
	s.applied++
	s.broadcastLocked()
	s.mu.Unlock()
}

// broadcastLocked wakes every Settle waiter. Caller holds s.mu.
func (s *Selector) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// RequestSelect schedules a switch to id and returns once the request is
// queued. Ids outside the catalog are rejected and never become current.
// After Close every request fails with ErrSelectorClosed.
func (s *Selector) RequestSelect(ctx context.Context, id string) error {
	if !s.catalog.Contains(id) {
		return fmt.Errorf("%q: %w", id, ErrUnknownTab)
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case <-s.done:
		return ErrSelectorClosed
	default:
	}

	s.mu.Lock()
	s.requested++
	s.mu.Unlock()

	select {
	case s.requests <- id:
		return nil
	case <-ctx.Done():
		s.retract()
		return ctx.Err()
	}
}

func (s *Selector) retract() {
	s.mu.Lock()
	s.requested--
	s.broadcastLocked()
	s.mu.Unlock()
}

// Pending reports whether an accepted request has not been applied yet.
func (s *Selector) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied != s.requested
}

// Current returns the last applied id.
func (s *Selector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Resolve returns the entry for the last applied id without waiting for
// pending requests.
func (s *Selector) Resolve() (Entry, error) {
	return s.catalog.Lookup(s.Current())
}

// Settle waits until no request is pending and returns the entry that is
// then current. On a closed selector it returns the final selection.
func (s *Selector) Settle(ctx context.Context) (Entry, error) {
	for {
		s.mu.Lock()
		if s.applied == s.requested {
			id := s.current
			s.mu.Unlock()
			return s.catalog.Lookup(id)
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		}
	}
}

func (s *Selector) Catalog() *Catalog { return s.catalog }

// Close stops accepting requests, applies the ones already queued and then
// stops the owner goroutine.
func (s *Selector) Close() {
	s.closeOnce.Do(func() {
		// sendMu keeps done from closing while a request is being enqueued.
		s.sendMu.Lock()
		close(s.done)
		s.sendMu.Unlock()
	})
	s.wg.Wait()
}
