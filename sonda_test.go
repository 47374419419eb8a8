package sonda_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sonda"
	"github.com/aretw0/sonda/pkg/adapters/memory"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/resolve"
	"github.com/aretw0/sonda/pkg/sink"
	"github.com/aretw0/sonda/pkg/stream"
)

var fixed = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newProbe(t *testing.T) (*sonda.Probe, *gate.Gate, *sink.Recorder) {
	t.Helper()
	g := gate.New()
	rec := sink.NewRecorder()
	p := sonda.New(
		sonda.WithGate(g),
		sonda.WithSink(rec),
		sonda.WithClock(func() time.Time { return fixed }),
	)
	return p, g, rec
}

type addItem struct{ ID int }

func cartReducer(cur domain.Snapshot, a addItem) domain.Snapshot {
	next := cur.Clone()
	items, _ := next["items"].(int)
	next["items"] = items + 1
	next["last"] = a.ID
	return next
}

func TestNew_Defaults(t *testing.T) {
	p := sonda.New()
	assert.Same(t, gate.Default(), p.Gate())
	assert.NotNil(t, p.Emitter().Sink())
}

func TestInstrument(t *testing.T) {
	p, _, rec := newProbe(t)
	cfg := resolve.MustNew(domain.SeverityInfo, "numbers", resolve.WithCallerTag("Calc"))

	var got []int
	var completed bool
	sonda.Instrument(p, stream.Of(1, 2), cfg).Subscribe(stream.Observe(
		func(v int) { got = append(got, v) },
		nil,
		func() { completed = true },
	))

	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, completed)
	assert.Equal(t, []domain.LifecycleKind{domain.KindNext, domain.KindNext, domain.KindCompleted}, rec.Kinds())

	first := rec.Records()[0]
	assert.Equal(t, fixed, first.Timestamp)
	assert.Equal(t, "Calc", first.CallerTag)
	assert.Equal(t, "int", first.PayloadType)
}

func TestTap(t *testing.T) {
	p, g, rec := newProbe(t)
	g.SetThreshold(domain.SeverityError)
	cfg := resolve.MustNew(domain.SeverityInfo, "failing")

	boom := errors.New("boom")
	var gotErr error
	sonda.Tap[int](p, cfg)(stream.Fail[int](boom)).Subscribe(stream.Observe[int](nil, func(err error) { gotErr = err }, nil))

	assert.Same(t, boom, gotErr)
	require.Len(t, rec.Records(), 1)
	assert.Equal(t, domain.KindError, rec.Records()[0].Kind)
	assert.Equal(t, domain.SeverityError, rec.Records()[0].Severity)
}

func TestWatch(t *testing.T) {
	p, _, rec := newProbe(t)
	store := memory.NewStore[addItem](domain.Snapshot{"items": 0}, cartReducer)

	dispatch, sub := sonda.Watch[addItem, domain.Snapshot](p, store)
	defer sub.Unsubscribe()

	result := dispatch(addItem{ID: 7})
	assert.Equal(t, domain.Snapshot{"items": 1, "last": 7}, result)

	actions := rec.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, addItem{ID: 7}, actions[0].Payload)
	assert.Equal(t, fixed, actions[0].Timestamp)

	states := rec.States()
	require.Len(t, states, 2)
	assert.Nil(t, states[0].Previous)
	assert.Equal(t, domain.DiffRecord{"items": {Current: 0, Added: true}}, states[0].Diff)
	assert.Equal(t, domain.DiffRecord{
		"items": {Previous: 0, Current: 1},
		"last":  {Current: 7, Added: true},
	}, states[1].Diff)

	sub.Unsubscribe()
	dispatch(addItem{ID: 8})
	assert.Len(t, rec.Actions(), 2, "the dispatcher outlives the tracker")
	assert.Len(t, rec.States(), 2)
}

func TestWatch_InactiveGate(t *testing.T) {
	p, g, rec := newProbe(t)
	g.SetDevMode(func() bool { return false })
	store := memory.NewStore[addItem](nil, cartReducer)

	dispatch, sub := sonda.Watch[addItem, domain.Snapshot](p, store)
	defer sub.Unsubscribe()

	assert.Equal(t, domain.Snapshot{"items": 1, "last": 1}, dispatch(addItem{ID: 1}))
	assert.Empty(t, rec.Actions())
	assert.Empty(t, rec.States())
}

func TestWrap(t *testing.T) {
	p, _, rec := newProbe(t)
	double := sonda.Wrap(p, func(n int) int { return n * 2 })

	assert.Equal(t, 42, double(21))
	require.Len(t, rec.Actions(), 1)
	assert.Equal(t, 21, rec.Actions()[0].Payload)
}

func TestWatchActions(t *testing.T) {
	p, _, rec := newProbe(t)
	actions := stream.NewSubject[string]()

	var seen []string
	sub := sonda.WatchActions[string](p, actions).Subscribe(stream.Observe(func(a string) { seen = append(seen, a) }, nil, nil))
	actions.Next("load")
	actions.Next("save")
	sub.Unsubscribe()
	actions.Next("ignored")

	assert.Equal(t, []string{"load", "save"}, seen)
	require.Len(t, rec.Actions(), 2)
	assert.Equal(t, "save", rec.Actions()[1].Payload)
}

func TestConsole(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		devMode bool
		want    int
	}{
		{"verbose in dev mode", true, true, 3},
		{"quiet file", false, true, 0},
		{"production", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, g, rec := newProbe(t)
			dev := tt.devMode
			g.SetDevMode(func() bool { return dev })

			p.Log(tt.verbose, "loaded", "count", 3)
			p.Warn(tt.verbose, "slow")
			p.Error(tt.verbose, "failed")

			entries := rec.Entries()
			require.Len(t, entries, tt.want)
			if tt.want > 0 {
				assert.Equal(t, sink.LevelInfo, entries[0].Level)
				assert.Equal(t, sink.LevelWarn, entries[1].Level)
				assert.Equal(t, sink.LevelError, entries[2].Level)
			}
		})
	}
}

func TestConsole_IgnoresThresholdAndEnabled(t *testing.T) {
	p, g, rec := newProbe(t)
	g.SetEnabled(false)
	g.SetThreshold(domain.SeverityError)

	p.Log(true, "still shown")
	assert.Len(t, rec.Entries(), 1)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, sonda.Version)
}
