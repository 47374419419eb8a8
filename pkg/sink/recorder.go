package sink

import (
	"sync"

	"github.com/aretw0/sonda/pkg/domain"
)

// Entry is a plain leveled call captured by a Recorder.
type Entry struct {
	Level   Channel
	Message string
	Args    []any
}

// Recorder keeps every record in memory. Safe for concurrent use.
// It is the capture sink of tests and of the demo command.
type Recorder struct {
	mu      sync.Mutex
	records []domain.LogRecord
	actions []domain.ActionRecord
	states  []domain.StateRecord
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(rec domain.LogRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *Recorder) Action(rec domain.ActionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, rec)
}

func (r *Recorder) StateChange(rec domain.StateRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, rec)
}

func (r *Recorder) Info(msg string, args ...any)  { r.entry(LevelInfo, msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.entry(LevelWarn, msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.entry(LevelError, msg, args) }

func (r *Recorder) entry(level Channel, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Args: args})
}

// Records returns a copy of the captured lifecycle records.
func (r *Recorder) Records() []domain.LogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LogRecord(nil), r.records...)
}

// Kinds returns the lifecycle kinds captured so far, in order.
func (r *Recorder) Kinds() []domain.LifecycleKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]domain.LifecycleKind, len(r.records))
	for i, rec := range r.records {
		kinds[i] = rec.Kind
	}
	return kinds
}

// Actions returns a copy of the captured action records.
func (r *Recorder) Actions() []domain.ActionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ActionRecord(nil), r.actions...)
}

// States returns a copy of the captured state records.
func (r *Recorder) States() []domain.StateRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.StateRecord(nil), r.states...)
}

// Entries returns a copy of the captured leveled calls.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Reset drops everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records, r.actions, r.states, r.entries = nil, nil, nil, nil
}
