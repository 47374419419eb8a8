package sonda

import (
	"log/slog"
	"time"

	"github.com/aretw0/sonda/pkg/dispatch"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/statediff"
	"github.com/aretw0/sonda/pkg/stream"
)

// Probe is the high-level entry point: it bundles a gate, a sink and a clock,
// and hands out stream, store and dispatch instrumentation sharing them.
type Probe struct {
	emitter      *emit.Emitter
	instrumentor *stream.Instrumentor
	interceptor  *dispatch.Interceptor
}

type options struct {
	emit []emit.Option
}

// Option defines a functional option for configuring a Probe.
type Option func(*options)

// WithGate shares g instead of the process-wide gate.
func WithGate(g *gate.Gate) Option {
	return func(o *options) {
		o.emit = append(o.emit, emit.WithGate(g))
	}
}

// WithSink routes every record to s.
func WithSink(s ports.Sink) Option {
	return func(o *options) {
		o.emit = append(o.emit, emit.WithSink(s))
	}
}

// WithLogger routes every record to a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return WithSink(logger)
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.emit = append(o.emit, emit.WithClock(now))
	}
}

// New creates a Probe. Without options it writes to slog.Default() under the
// process-wide gate.
func New(opts ...Option) *Probe {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	e := emit.New(o.emit...)
	return &Probe{
		emitter:      e,
		instrumentor: stream.NewInstrumentor(e),
		interceptor:  dispatch.NewInterceptor(e),
	}
}

// Gate returns the gate governing the probe.
func (p *Probe) Gate() *gate.Gate {
	return p.emitter.Gate()
}

// Emitter exposes the underlying emitter.
func (p *Probe) Emitter() *emit.Emitter {
	return p.emitter
}

// Instrument wraps src so its lifecycle is logged according to cfg.
// Values, errors and completion pass through unchanged.
func Instrument[T any](p *Probe, src ports.Observable[T], cfg domain.Config) ports.Observable[T] {
	return stream.Instrument(p.instrumentor, src, cfg)
}

// Tap is Instrument in operator form.
func Tap[T any](p *Probe, cfg domain.Config) func(ports.Observable[T]) ports.Observable[T] {
	return stream.Tap[T](p.instrumentor, cfg)
}

// Tracker returns a fresh state tracker writing through the probe.
func (p *Probe) Tracker() *statediff.Tracker {
	return statediff.NewTracker(p.emitter)
}

// Wrap decorates a dispatch function so every action is logged before it runs.
func Wrap[A, R any](p *Probe, fn func(action A) R) ports.DispatchFunc[A, R] {
	return dispatch.Wrap(p.interceptor, fn)
}

// Watch attaches a state tracker to store and returns its wrapped dispatcher.
// Unsubscribing the returned subscription detaches the tracker; the
// dispatcher keeps working.
func Watch[A, R any](p *Probe, store ports.Store[A, R]) (ports.DispatchFunc[A, R], ports.Subscription) {
	sub := p.Tracker().Attach(store.State())
	return dispatch.WrapStore(p.interceptor, store), sub
}

// WatchActions logs every action flowing through actions as an ActionRecord
// and passes it on unchanged.
func WatchActions[A any](p *Probe, actions ports.Observable[A]) ports.Observable[A] {
	return stream.New(func(o ports.Observer[A]) ports.Subscription {
		return actions.Subscribe(stream.ObserverFuncs[A]{
			Next: func(action A) {
				p.interceptor.Observe(action)
				o.OnNext(action)
			},
			Error:    o.OnError,
			Complete: o.OnComplete,
		})
	})
}
