package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
)

type subscriber struct {
	ch   chan models.SessionEvent
	done chan struct{}
}

// Source is the session-change stream. Each subscriber receives every
// published event exactly once and in publication order.
type Source struct {
	// serializes Publish so that all subscribers see the same order
	pubMu sync.Mutex

	mu      sync.RWMutex
	current models.SessionEvent
	subs    map[int]*subscriber
	nextID  int
}

func NewSource() *Source {
	return &Source{
		current: models.SessionEvent{Status: models.StatusUnauthenticated},
		subs:    make(map[int]*subscriber),
	}
}

// Subscribe registers a subscriber with the given channel buffer. The
// returned cancel func unregisters it; the channel is not closed, so
// consumers should also watch their context.
func (s *Source) Subscribe(buffer int) (<-chan models.SessionEvent, func()) {
	sub := &subscriber{
		ch:   make(chan models.SessionEvent, buffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(sub.done)
		})
	}
	return sub.ch, cancel
}

// Publish records ev as the current session and delivers it to every
// subscriber. It blocks until each subscriber accepted the event, left, or
// ctx is done; on cancellation the remaining subscribers miss this event.
func (s *Source) Publish(ctx context.Context, ev models.SessionEvent) error {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	s.current = ev
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Current returns the last published event.
func (s *Source) Current() models.SessionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentSession returns the active session, or nil when nobody is signed in.
func (s *Source) CurrentSession(ctx context.Context) *models.Session {
	ev := s.Current()
	if ev.Status != models.StatusAuthenticated {
		return nil
	}
	return ev.Session
}
