package sink

import (
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
)

// Multi fans out records to several sinks. Each target is isolated from the
// others: one panicking sink does not starve the rest.
type Multi struct {
	sinks []ports.Sink
}

// NewMulti creates a Multi forwarding to all non-nil sinks.
func NewMulti(sinks ...ports.Sink) *Multi {
	filtered := make([]ports.Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &Multi{sinks: filtered}
}

func (m *Multi) Record(rec domain.LogRecord) {
	for _, s := range m.sinks {
		Write(s, rec)
	}
}

func (m *Multi) Action(rec domain.ActionRecord) {
	for _, s := range m.sinks {
		WriteAction(s, rec)
	}
}

func (m *Multi) StateChange(rec domain.StateRecord) {
	for _, s := range m.sinks {
		WriteState(s, rec)
	}
}

func (m *Multi) Info(msg string, args ...any) {
	for _, s := range m.sinks {
		guard(func() { s.Info(msg, args...) })
	}
}

func (m *Multi) Warn(msg string, args ...any) {
	for _, s := range m.sinks {
		guard(func() { s.Warn(msg, args...) })
	}
}

func (m *Multi) Error(msg string, args ...any) {
	for _, s := range m.sinks {
		guard(func() { s.Error(msg, args...) })
	}
}

func guard(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
