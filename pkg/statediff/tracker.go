package statediff

import (
	"sync"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/stream"
)

// Tracker keeps the previous snapshot of one store and logs every change.
type Tracker struct {
	emitter *emit.Emitter

	mu      sync.Mutex
	prev    domain.Snapshot
	hasPrev bool
}

// NewTracker creates a tracker writing through e.
// A nil emitter falls back to emit.New().
func NewTracker(e *emit.Emitter) *Tracker {
	if e == nil {
		e = emit.New()
	}
	return &Tracker{emitter: e}
}

// OnSnapshot diffs cur against the retained snapshot, logs the result and
// retains a shallow copy of cur. The record carries its own copy of cur. Logging only requires enabled && devMode;
// severity is not consulted.
func (t *Tracker) OnSnapshot(cur domain.Snapshot) domain.DiffRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	var prev domain.Snapshot
	if t.hasPrev {
		prev = t.prev
		if prev == nil {
			prev = domain.Snapshot{}
		}
	}

	diff := Diff(prev, cur)

	if t.emitter.Gate().Active() {
		t.emitter.State(domain.StateRecord{
			Previous: prev,
			Current:  cur.Clone(),
			Diff:     diff,
		})
	}

	t.prev = cur.Clone()
	t.hasPrev = true
	return diff
}

// Previous returns a copy of the retained snapshot, nil before the first one.
func (t *Tracker) Previous() domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prev.Clone()
}

// Reset forgets the retained snapshot.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prev = nil
	t.hasPrev = false
}

// Attach feeds every snapshot of src into the tracker.
// Errors and completion of src end the tracking silently.
func (t *Tracker) Attach(src ports.Observable[domain.Snapshot]) ports.Subscription {
	return src.Subscribe(stream.Observe(func(s domain.Snapshot) {
		t.OnSnapshot(s)
	}, nil, nil))
}
