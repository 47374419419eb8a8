package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sonda/pkg/dispatch"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/sink"
)

type addItem struct {
	SKU string
	Qty int
}

func newInterceptor(t *testing.T) (*dispatch.Interceptor, *gate.Gate, *sink.Recorder) {
	t.Helper()
	g := gate.New()
	rec := sink.NewRecorder()
	return dispatch.NewInterceptor(emit.New(emit.WithGate(g), emit.WithSink(rec))), g, rec
}

func TestWrap_Transparency(t *testing.T) {
	in, _, rec := newInterceptor(t)

	var received []addItem
	recordedBefore := -1
	original := func(a addItem) int {
		received = append(received, a)
		recordedBefore = len(rec.Actions())
		return a.Qty * 10
	}

	wrapped := dispatch.Wrap(in, original)
	action := addItem{SKU: "sku-1", Qty: 2}
	result := wrapped(action)

	assert.Equal(t, 20, result)
	assert.Equal(t, []addItem{action}, received)
	assert.Equal(t, 1, recordedBefore, "the action is logged before the original runs")

	actions := rec.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, action, actions[0].Payload)
	assert.False(t, actions[0].Timestamp.IsZero())
}

func TestWrap_ReturnsIdenticalReference(t *testing.T) {
	in, _, _ := newInterceptor(t)
	state := &domain.Snapshot{"a": 1}

	wrapped := dispatch.Wrap(in, func(string) *domain.Snapshot { return state })
	assert.Same(t, state, wrapped("noop"))
}

func TestWrap_SilentWhenInactive(t *testing.T) {
	in, g, rec := newInterceptor(t)
	g.SetDevMode(func() bool { return false })

	calls := 0
	wrapped := dispatch.Wrap(in, func(string) bool { calls++; return true })

	assert.True(t, wrapped("a"))
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.Actions())
}

func TestWrap_IgnoresSeverityThreshold(t *testing.T) {
	in, g, rec := newInterceptor(t)
	g.SetThreshold(domain.SeverityError)

	dispatch.Wrap(in, func(string) struct{} { return struct{}{} })("a")
	assert.Len(t, rec.Actions(), 1)
}

func TestWrapContext_PassesErrorThrough(t *testing.T) {
	in, _, rec := newInterceptor(t)
	denied := errors.New("denied")

	wrapped := dispatch.WrapContext(in, func(ctx context.Context, a string) (int, error) {
		return 0, denied
	})

	_, err := wrapped(context.Background(), "delete")
	assert.True(t, err == denied)
	assert.Len(t, rec.Actions(), 1)
}

type brokenSink struct{ sink.Nop }

func (brokenSink) Info(string, ...any) { panic("sink down") }

func TestWrap_SinkFailureIsIsolated(t *testing.T) {
	in := dispatch.NewInterceptor(emit.New(emit.WithGate(gate.New()), emit.WithSink(brokenSink{})))
	wrapped := dispatch.Wrap(in, func(n int) int { return n + 1 })

	var got int
	assert.NotPanics(t, func() { got = wrapped(41) })
	assert.Equal(t, 42, got)
}
