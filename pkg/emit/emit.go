// Package emit binds a gate, a sink and a clock into the single write path
// shared by the stream instrumentor, the state tracker and the dispatch interceptor.
package emit

import (
	"log/slog"
	"time"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/sink"
)

// Emitter stamps records and writes them to its sink.
// It never decides whether to log; callers consult Gate first.
type Emitter struct {
	gate *gate.Gate
	sink ports.Sink
	now  func() time.Time
}

// Option defines a functional option for configuring the Emitter.
type Option func(*Emitter)

// WithGate uses g instead of the process-wide gate.
func WithGate(g *gate.Gate) Option {
	return func(e *Emitter) {
		e.gate = g
	}
}

// WithSink sets the destination sink.
func WithSink(s ports.Sink) Option {
	return func(e *Emitter) {
		e.sink = s
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

// New creates an emitter. Defaults: gate.Default(), slog.Default(), time.Now.
func New(opts ...Option) *Emitter {
	e := &Emitter{}
	for _, opt := range opts {
		opt(e)
	}
	if e.gate == nil {
		e.gate = gate.Default()
	}
	if e.sink == nil {
		e.sink = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Gate returns the gate this emitter reports to.
func (e *Emitter) Gate() *gate.Gate {
	return e.gate
}

// Sink returns the destination sink.
func (e *Emitter) Sink() ports.Sink {
	return e.sink
}

// Now returns the current time from the emitter's clock.
func (e *Emitter) Now() time.Time {
	return e.now()
}

// Record stamps and writes a lifecycle record.
// The caller tag is dropped while caller tags are disabled on the gate.
func (e *Emitter) Record(rec domain.LogRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = e.now()
	}
	if !e.gate.CallerTagsEnabled() {
		rec.CallerTag = ""
	}
	sink.Write(e.sink, rec)
}

// Action stamps and writes an action record.
func (e *Emitter) Action(payload any) {
	sink.WriteAction(e.sink, domain.ActionRecord{
		Timestamp: e.now(),
		Payload:   payload,
	})
}

// State stamps and writes a state change record.
func (e *Emitter) State(rec domain.StateRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = e.now()
	}
	sink.WriteState(e.sink, rec)
}
