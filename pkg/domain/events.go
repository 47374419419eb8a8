package domain

import "time"

// LifecycleKind identifies which stream lifecycle point produced a record.
type LifecycleKind string

const (
	KindNext         LifecycleKind = "Next"
	KindError        LifecycleKind = "Error"
	KindCompleted    LifecycleKind = "Completed"
	KindSubscribed   LifecycleKind = "Subscribed"
	KindUnsubscribed LifecycleKind = "Unsubscribed"
	KindFinalized    LifecycleKind = "Finalized"
)

// LogRecord is one observed stream lifecycle event.
type LogRecord struct {
	Timestamp      time.Time     `json:"timestamp"`
	SubscriptionID string        `json:"subscription_id"`
	CallerTag      string        `json:"caller_tag,omitempty"`
	Severity       Severity      `json:"severity"`
	Kind           LifecycleKind `json:"kind"`
	Message        string        `json:"message"`
	Payload        any           `json:"payload,omitempty"`
	PayloadType    string        `json:"payload_type,omitempty"`
	StackTrace     string        `json:"stack_trace,omitempty"`
}

// HasPayload reports whether the record carries a value or an error.
func (r LogRecord) HasPayload() bool {
	return r.Kind == KindNext || r.Kind == KindError
}

// ActionRecord is one dispatched action.
type ActionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// StateRecord is one state store emission together with its diff.
// Previous is nil for the first snapshot.
type StateRecord struct {
	Timestamp time.Time  `json:"timestamp"`
	Previous  Snapshot   `json:"previous"`
	Current   Snapshot   `json:"current"`
	Diff      DiffRecord `json:"diff"`
}
