package stream

import (
	"slices"
	"sync"

	"github.com/aretw0/sonda/pkg/ports"
)

// Func adapts a subscribe function to ports.Observable.
type Func[T any] func(observer ports.Observer[T]) ports.Subscription

func (f Func[T]) Subscribe(observer ports.Observer[T]) ports.Subscription {
	return f(observer)
}

// New creates an observable from its subscribe function.
func New[T any](subscribe func(observer ports.Observer[T]) ports.Subscription) ports.Observable[T] {
	return Func[T](subscribe)
}

// OnUnsubscribe returns a subscription running teardown at most once.
func OnUnsubscribe(teardown func()) ports.Subscription {
	return &onceSubscription{teardown: teardown}
}

type onceSubscription struct {
	once     sync.Once
	teardown func()
}

func (s *onceSubscription) Unsubscribe() {
	s.once.Do(func() {
		if s.teardown != nil {
			s.teardown()
		}
	})
}

// Of emits values synchronously, then completes.
func Of[T any](values ...T) ports.Observable[T] {
	return New(func(o ports.Observer[T]) ports.Subscription {
		for _, v := range values {
			o.OnNext(v)
		}
		o.OnComplete()
		return OnUnsubscribe(nil)
	})
}

// Fail emits err synchronously.
func Fail[T any](err error) ports.Observable[T] {
	return New(func(o ports.Observer[T]) ports.Subscription {
		o.OnError(err)
		return OnUnsubscribe(nil)
	})
}

// ObserverFuncs implements ports.Observer with optional callbacks.
type ObserverFuncs[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

func (o ObserverFuncs[T]) OnNext(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o ObserverFuncs[T]) OnError(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o ObserverFuncs[T]) OnComplete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Observe builds an observer from callbacks. Nil callbacks are ignored.
func Observe[T any](next func(T), err func(error), complete func()) ports.Observer[T] {
	return ObserverFuncs[T]{Next: next, Error: err, Complete: complete}
}

// Subject is a hot observable that multicasts what is pushed into it.
// Safe for concurrent use. Subscribers arriving after termination receive the
// terminal signal immediately.
type Subject[T any] struct {
	mu        sync.Mutex
	observers map[int]ports.Observer[T]
	nextID    int
	done      bool
	err       error
}

// NewSubject creates an open subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{observers: make(map[int]ports.Observer[T])}
}

func (s *Subject[T]) Subscribe(o ports.Observer[T]) ports.Subscription {
	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			o.OnError(err)
		} else {
			o.OnComplete()
		}
		return OnUnsubscribe(nil)
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	return OnUnsubscribe(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	})
}

// Next pushes v to every current subscriber.
func (s *Subject[T]) Next(v T) {
	for _, o := range s.snapshot(false, nil) {
		o.OnNext(v)
	}
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	for _, o := range s.snapshot(true, err) {
		o.OnError(err)
	}
}

// Complete terminates the subject successfully.
func (s *Subject[T]) Complete() {
	for _, o := range s.snapshot(true, nil) {
		o.OnComplete()
	}
}

// Observers returns the number of live subscribers.
func (s *Subject[T]) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// snapshot copies the observer set so callbacks run without holding the lock.
func (s *Subject[T]) snapshot(terminate bool, err error) []ports.Observer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}

	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]ports.Observer[T], 0, len(ids))
	for _, id := range ids {
		out = append(out, s.observers[id])
	}

	if terminate {
		s.done = true
		s.err = err
		s.observers = make(map[int]ports.Observer[T])
	}
	return out
}
