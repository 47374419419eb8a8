package stream_test

import (
	"testing"
	"time"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/resolve"
	"github.com/aretw0/sonda/pkg/sink"
	"github.com/aretw0/sonda/pkg/stream"
)

// collector records everything delivered downstream.
type collector[T any] struct {
	values    []T
	errs      []error
	completed int
}

func (c *collector[T]) OnNext(v T)        { c.values = append(c.values, v) }
func (c *collector[T]) OnError(err error) { c.errs = append(c.errs, err) }
func (c *collector[T]) OnComplete()       { c.completed++ }

type fixture struct {
	gate *gate.Gate
	rec  *sink.Recorder
	in   *stream.Instrumentor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g := gate.New()
	rec := sink.NewRecorder()
	e := emit.New(
		emit.WithGate(g),
		emit.WithSink(rec),
		emit.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	)
	return &fixture{gate: g, rec: rec, in: stream.NewInstrumentor(e)}
}

func mustConfig(t *testing.T, sev domain.Severity, opts ...resolve.Option) domain.Config {
	t.Helper()
	cfg, err := resolve.New(sev, "under test", opts...)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return cfg
}

var allLifecycle = resolve.WithSelector(domain.LifecycleSelector{Subscribe: true, Unsubscribe: true, Finalize: true})

func emitterWithSink(s ports.Sink) *emit.Emitter {
	return emit.New(emit.WithGate(gate.New()), emit.WithSink(s))
}
