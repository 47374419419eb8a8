package sink

import (
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
)

// Messages used for records that have no call-site message of their own.
const (
	MsgActionDispatched = "action dispatched"
	MsgStateChanged     = "state changed"
)

// Write delivers a lifecycle record. Sink panics are recovered and discarded.
func Write(s ports.Sink, rec domain.LogRecord) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()

	if rs, ok := s.(ports.RecordSink); ok {
		rs.Record(rec)
		return
	}

	args := RecordArgs(rec)
	switch Level(rec) {
	case LevelError:
		s.Error(rec.Message, args...)
	case LevelWarn:
		s.Warn(rec.Message, args...)
	default:
		s.Info(rec.Message, args...)
	}
}

// WriteAction delivers an action record. Sink panics are recovered and discarded.
func WriteAction(s ports.Sink, rec domain.ActionRecord) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()

	if rs, ok := s.(ports.RecordSink); ok {
		rs.Action(rec)
		return
	}
	s.Info(MsgActionDispatched, "timestamp", rec.Timestamp, "action", rec.Payload)
}

// WriteState delivers a state change record. Sink panics are recovered and discarded.
func WriteState(s ports.Sink, rec domain.StateRecord) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()

	if rs, ok := s.(ports.RecordSink); ok {
		rs.StateChange(rec)
		return
	}
	s.Info(MsgStateChanged,
		"timestamp", rec.Timestamp,
		"previous", rec.Previous,
		"current", rec.Current,
		"changes", rec.Diff,
	)
}

// RecordArgs flattens a record into slog-style key/value pairs.
func RecordArgs(rec domain.LogRecord) []any {
	args := make([]any, 0, 16)
	args = append(args,
		"timestamp", rec.Timestamp,
		"kind", string(rec.Kind),
		"severity", rec.Severity.String(),
		"subscription", rec.SubscriptionID,
	)
	if rec.CallerTag != "" {
		args = append(args, "caller", rec.CallerTag)
	}
	if rec.HasPayload() {
		args = append(args, "payload", rec.Payload)
		if rec.PayloadType != "" {
			args = append(args, "payload_type", rec.PayloadType)
		}
	}
	if rec.StackTrace != "" {
		args = append(args, "stack", rec.StackTrace)
	}
	return args
}

// Info writes a plain message. Sink panics are recovered and discarded.
func Info(s ports.Sink, msg string, args ...any) {
	if s != nil {
		guard(func() { s.Info(msg, args...) })
	}
}

// Warn writes a plain warning. Sink panics are recovered and discarded.
func Warn(s ports.Sink, msg string, args ...any) {
	if s != nil {
		guard(func() { s.Warn(msg, args...) })
	}
}

// Error writes a plain error message. Sink panics are recovered and discarded.
func Error(s ports.Sink, msg string, args ...any) {
	if s != nil {
		guard(func() { s.Error(msg, args...) })
	}
}
