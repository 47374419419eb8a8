package stream

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/ports"
)

// Instrumentor attaches lifecycle logging to streams.
type Instrumentor struct {
	emitter *emit.Emitter
}

// NewInstrumentor creates an instrumentor writing through e.
// A nil emitter falls back to emit.New().
func NewInstrumentor(e *emit.Emitter) *Instrumentor {
	if e == nil {
		e = emit.New()
	}
	return &Instrumentor{emitter: e}
}

// Emitter returns the emitter records are written through.
func (in *Instrumentor) Emitter() *emit.Emitter {
	return in.emitter
}

// Instrument returns an observable identical to src with logging attached.
// cfg is copied; it should come from the resolve package.
func Instrument[T any](in *Instrumentor, src ports.Observable[T], cfg domain.Config) ports.Observable[T] {
	return &instrumented[T]{in: in, src: src, cfg: cfg}
}

// Tap is the operator form of Instrument, for pipe-style composition.
func Tap[T any](in *Instrumentor, cfg domain.Config) func(ports.Observable[T]) ports.Observable[T] {
	return func(src ports.Observable[T]) ports.Observable[T] {
		return Instrument(in, src, cfg)
	}
}

type instrumented[T any] struct {
	in  *Instrumentor
	src ports.Observable[T]
	cfg domain.Config
}

func (o *instrumented[T]) Subscribe(down ports.Observer[T]) ports.Subscription {
	s := &subscription[T]{
		emitter: o.in.emitter,
		cfg:     o.cfg,
		down:    down,
		id:      uuid.NewString(),
	}

	s.lifecycle(domain.KindSubscribed, o.cfg.Selector.Subscribe)
	s.attach(o.src.Subscribe(s))
	return s
}

// subscription sits between the source and the downstream observer.
// It is both the observer handed to the source and the handle returned downstream.
type subscription[T any] struct {
	emitter *emit.Emitter
	cfg     domain.Config
	down    ports.Observer[T]
	id      string

	// stopped is set by the first terminal signal or by Unsubscribe.
	stopped  atomic.Bool
	finalize sync.Once

	mu           sync.Mutex
	src          ports.Subscription
	unsubscribed bool
}

func (s *subscription[T]) OnNext(v T) {
	if s.stopped.Load() {
		return
	}
	if s.allows(s.cfg.Severity) {
		s.emit(domain.LogRecord{
			Severity:    s.cfg.Severity,
			Kind:        domain.KindNext,
			Payload:     v,
			PayloadType: fmt.Sprintf("%T", v),
			StackTrace:  s.trace(),
		})
	}
	s.down.OnNext(v)
}

func (s *subscription[T]) OnError(err error) {
	if s.stopped.Swap(true) {
		return
	}
	// Fixed ERROR rank: an INFO call site still reports its errors.
	if s.allows(domain.SeverityError) {
		s.emit(domain.LogRecord{
			Severity:    domain.SeverityError,
			Kind:        domain.KindError,
			Payload:     err,
			PayloadType: fmt.Sprintf("%T", err),
			StackTrace:  s.trace(),
		})
	}
	s.down.OnError(err)
	s.finish()
}

func (s *subscription[T]) OnComplete() {
	if s.stopped.Swap(true) {
		return
	}
	if s.allows(s.cfg.Severity) {
		s.emit(domain.LogRecord{
			Severity: s.cfg.Severity,
			Kind:     domain.KindCompleted,
		})
	}
	s.down.OnComplete()
	s.finish()
}

func (s *subscription[T]) Unsubscribe() {
	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		return
	}
	s.unsubscribed = true
	src := s.src
	s.mu.Unlock()

	// Unsubscribed only describes an early teardown, not one after termination.
	if !s.stopped.Swap(true) {
		s.lifecycle(domain.KindUnsubscribed, s.cfg.Selector.Unsubscribe)
	}
	if src != nil {
		src.Unsubscribe()
	}
	s.finish()
}

// attach stores the source subscription. A downstream Unsubscribe that raced
// ahead of it (synchronous sources) is replayed on the source.
func (s *subscription[T]) attach(src ports.Subscription) {
	s.mu.Lock()
	s.src = src
	unsubscribed := s.unsubscribed
	s.mu.Unlock()

	if unsubscribed && src != nil {
		src.Unsubscribe()
	}
}

func (s *subscription[T]) finish() {
	s.finalize.Do(func() {
		s.lifecycle(domain.KindFinalized, s.cfg.Selector.Finalize)
	})
}

// allows is the full gate for severity-ranked records.
func (s *subscription[T]) allows(sev domain.Severity) bool {
	g := s.emitter.Gate()
	return s.cfg.Verbose && g.Allows(sev) && g.DevMode()
}

// lifecycle writes a selector-driven record. Severity is never consulted.
func (s *subscription[T]) lifecycle(kind domain.LifecycleKind, selected bool) {
	if !selected || !s.cfg.Verbose || !s.emitter.Gate().Active() {
		return
	}
	s.emit(domain.LogRecord{
		Severity: s.cfg.Severity,
		Kind:     kind,
	})
}

func (s *subscription[T]) emit(rec domain.LogRecord) {
	rec.SubscriptionID = s.id
	rec.CallerTag = s.cfg.CallerTag
	rec.Message = s.cfg.Message
	s.emitter.Record(rec)
}

// trace captures a fresh stack for every record, not once per wrap.
func (s *subscription[T]) trace() string {
	if !s.cfg.CaptureTrace {
		return ""
	}
	return string(debug.Stack())
}
