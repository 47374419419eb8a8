package memory

import (
	"sync"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/stream"
)

// Reducer computes the next state from the current one and an action.
// It must not mutate current.
type Reducer[A any] func(current domain.Snapshot, action A) domain.Snapshot

// Store implements ports.Store in memory with a reducer.
// Safe for concurrent use. Subscribers receive the current snapshot on
// subscribe and every new snapshot after a dispatch, synchronously.
type Store[A any] struct {
	mu      sync.Mutex
	state   domain.Snapshot
	reducer Reducer[A]
	subject *stream.Subject[domain.Snapshot]
}

// NewStore creates a store holding a copy of initial.
func NewStore[A any](initial domain.Snapshot, reducer Reducer[A]) *Store[A] {
	if initial == nil {
		initial = domain.Snapshot{}
	}
	return &Store[A]{
		state:   initial.Clone(),
		reducer: reducer,
		subject: stream.NewSubject[domain.Snapshot](),
	}
}

var _ ports.Store[string, domain.Snapshot] = (*Store[string])(nil)

// State returns the snapshot stream.
func (s *Store[A]) State() ports.Observable[domain.Snapshot] {
	return stream.New(func(o ports.Observer[domain.Snapshot]) ports.Subscription {
		o.OnNext(s.Current())
		return s.subject.Subscribe(o)
	})
}

// Current returns a copy of the current snapshot.
func (s *Store[A]) Current() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies the reducer and publishes the resulting snapshot.
// It returns a copy of the new state.
func (s *Store[A]) Dispatch(action A) domain.Snapshot {
	s.mu.Lock()
	next := s.reducer(s.state, action)
	if next == nil {
		next = domain.Snapshot{}
	}
	s.state = next
	published := next.Clone()
	s.mu.Unlock()

	s.subject.Next(published)
	return published.Clone()
}

// Close completes the snapshot stream.
func (s *Store[A]) Close() {
	s.subject.Complete()
}
