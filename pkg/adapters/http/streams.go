package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/sonda/pkg/domain"
)

// Topics published by a StreamManager.
const (
	TopicRecords = "records"
	TopicActions = "actions"
	TopicStates  = "states"
)

func validTopic(topic string) bool {
	switch topic {
	case TopicRecords, TopicActions, TopicStates:
		return true
	}
	return false
}

// Event is one encoded record queued for a client.
type Event struct {
	Kind domain.LifecycleKind
	Data []byte
}

// StreamManager fans instrumentation records out to connected SSE clients.
// It is a sink: plug it into the emitter (usually through sink.NewMulti).
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{} // Topic -> Set of Channels
	buffer      int
}

// NewStreamManager creates a manager buffering up to 16 events per client.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      16,
	}
}

// Subscribe registers a client on topic. The returned function releases it.
func (sm *StreamManager) Subscribe(topic string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, sm.buffer)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan Event]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[topic]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, topic)
				}
			}
		})
	}
}

// Subscribers returns the number of clients on topic.
func (sm *StreamManager) Subscribers(topic string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic])
}

// Broadcast queues ev for every client on topic. Slow clients lose events.
func (sm *StreamManager) Broadcast(topic string, ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- ev:
		default:
			slog.Warn("SSE: Client buffer full, dropping event", "topic", topic)
		}
	}
}

func (sm *StreamManager) publish(topic string, kind domain.LifecycleKind, v any) {
	if sm.Subscribers(topic) == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Debug("SSE: Event not encodable", "topic", topic, "error", err)
		return
	}
	sm.Broadcast(topic, Event{Kind: kind, Data: data})
}

// Record implements ports.RecordSink.
func (sm *StreamManager) Record(rec domain.LogRecord) {
	if err, ok := rec.Payload.(error); ok {
		rec.Payload = err.Error()
	}
	sm.publish(TopicRecords, rec.Kind, rec)
}

// Action implements ports.RecordSink.
func (sm *StreamManager) Action(rec domain.ActionRecord) {
	sm.publish(TopicActions, "", rec)
}

// StateChange implements ports.RecordSink.
func (sm *StreamManager) StateChange(rec domain.StateRecord) {
	sm.publish(TopicStates, "", rec)
}

// Info, Warn and Error implement ports.Sink. Console messages are not streamed.
func (sm *StreamManager) Info(msg string, args ...any)  {}
func (sm *StreamManager) Warn(msg string, args ...any)  {}
func (sm *StreamManager) Error(msg string, args ...any) {}
