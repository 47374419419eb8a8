package sonda_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/sonda"
	"github.com/aretw0/sonda/pkg/adapters/memory"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/resolve"
	"github.com/aretw0/sonda/pkg/sink"
	"github.com/aretw0/sonda/pkg/stream"
)

// stdoutLogger drops the volatile attributes so the output is stable.
func stdoutLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey, "timestamp", "subscription":
				return slog.Attr{}
			}
			return a
		},
	}))
}

// ExampleInstrument logs every value of a stream without changing it.
func ExampleInstrument() {
	probe := sonda.New(sonda.WithGate(gate.New()), sonda.WithLogger(stdoutLogger()))

	cfg := resolve.MustNew(domain.SeverityInfo, "letters", resolve.WithCallerTag("Demo"))
	sonda.Instrument(probe, stream.Of("a"), cfg).Subscribe(stream.Observe[string](nil, nil, nil))

	// Output:
	// level=INFO msg=letters kind=Next severity=info caller=Demo payload=a payload_type=string
	// level=INFO msg=letters kind=Completed severity=info caller=Demo
}

// ExampleWatch traces a store: one action record per dispatch and one state
// record per snapshot.
func ExampleWatch() {
	rec := sink.NewRecorder()
	probe := sonda.New(sonda.WithGate(gate.New()), sonda.WithSink(rec))

	store := memory.NewStore[int](domain.Snapshot{"count": 0}, func(cur domain.Snapshot, delta int) domain.Snapshot {
		next := cur.Clone()
		next["count"] = cur["count"].(int) + delta
		return next
	})

	dispatch, sub := sonda.Watch[int, domain.Snapshot](probe, store)
	defer sub.Unsubscribe()
	dispatch(5)

	for _, s := range rec.States() {
		fmt.Println(s.Previous, "->", s.Current)
	}
	fmt.Println("actions:", len(rec.Actions()))

	// Output:
	// map[] -> map[count:0]
	// map[count:0] -> map[count:5]
	// actions: 1
}
