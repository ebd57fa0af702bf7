// Package store holds the client's root state aggregate in memory and exposes
// its transitions as methods. Listeners are told which slice changed after
// every committed mutation; the persistence envelope is one such listener.
package store

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
)

// TimestampLayout is the ISO-8601 form used for lastUpdated and lastSync.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Change describes one committed mutation.
type Change struct {
	Slice string
	State models.RootState
}

type Listener func(Change)

// Store is safe for concurrent use. Listeners run synchronously on the
// mutating goroutine, after the lock is released, and must not block.
type Store struct {
	mu        sync.RWMutex
	state     models.RootState
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

type Option func(*Store)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store seeded with initial, typically the rehydrated state.
func New(initial models.RootState, opts ...Option) *Store {
	s := &Store{
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a deep copy of the current state.
func (s *Store) State() models.RootState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

// update applies fn to the state under the lock and notifies listeners when
// fn reports a change.
func (s *Store) update(slice string, fn func(st *models.RootState) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snapshot := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(Change{Slice: slice, State: snapshot})
	}
}
