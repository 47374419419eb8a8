package ports

import "github.com/aretw0/sonda/pkg/domain"

// Sink is the leveled logging channel records are finally written to.
// Arguments after the message are slog-style key/value pairs.
type Sink interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// RecordSink is implemented by sinks that want records in structured form
// instead of flattened key/value arguments.
type RecordSink interface {
	Record(rec domain.LogRecord)
	Action(rec domain.ActionRecord)
	StateChange(rec domain.StateRecord)
}
