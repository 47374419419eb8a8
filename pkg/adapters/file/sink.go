// Package file writes instrumentation records to a local file, one JSON
// object per line.
package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
)

// Line types written by Sink.
const (
	TypeRecord  = "record"
	TypeAction  = "action"
	TypeState   = "state"
	TypeMessage = "message"
)

// Line is one entry of the output file.
type Line struct {
	Type    string               `json:"type"`
	Record  *domain.LogRecord    `json:"record,omitempty"`
	Action  *domain.ActionRecord `json:"action,omitempty"`
	State   *domain.StateRecord  `json:"state,omitempty"`
	Message *Message             `json:"message,omitempty"`
}

// Message is a plain leveled message.
type Message struct {
	Time  time.Time `json:"time"`
	Level string    `json:"level"`
	Text  string    `json:"text"`
	Args  []any     `json:"args,omitempty"`
}

// Sink appends records to a file as JSON lines. Safe for concurrent use.
// Values that cannot be encoded are dropped.
type Sink struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	enc *json.Encoder
	now func() time.Time
}

var (
	_ ports.Sink       = (*Sink)(nil)
	_ ports.RecordSink = (*Sink)(nil)
)

// NewSink opens path for appending, creating parent directories.
// If path is empty, it defaults to ".sonda/records.jsonl".
func NewSink(path string) (*Sink, error) {
	if path == "" {
		path = filepath.Join(".sonda", "records.jsonl")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure record directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	s := NewWriterSink(f)
	s.c = f
	return s, nil
}

// NewWriterSink writes JSON lines to w.
func NewWriterSink(w io.Writer) *Sink {
	return &Sink{w: w, enc: json.NewEncoder(w), now: time.Now}
}

func (s *Sink) write(line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(line)
}

func (s *Sink) Record(rec domain.LogRecord) {
	if err, ok := rec.Payload.(error); ok {
		rec.Payload = err.Error()
	}
	s.write(Line{Type: TypeRecord, Record: &rec})
}

func (s *Sink) Action(rec domain.ActionRecord) {
	s.write(Line{Type: TypeAction, Action: &rec})
}

func (s *Sink) StateChange(rec domain.StateRecord) {
	s.write(Line{Type: TypeState, State: &rec})
}

func (s *Sink) Info(msg string, args ...any)  { s.message("info", msg, args) }
func (s *Sink) Warn(msg string, args ...any)  { s.message("warn", msg, args) }
func (s *Sink) Error(msg string, args ...any) { s.message("error", msg, args) }

// message encodes a copy of args; the caller's slice is shared with other sinks.
func (s *Sink) message(level, msg string, args []any) {
	args = slices.Clone(args)
	for i, a := range args {
		if err, ok := a.(error); ok {
			args[i] = err.Error()
		}
	}
	s.write(Line{Type: TypeMessage, Message: &Message{Time: s.now(), Level: level, Text: msg, Args: args}})
}

// Close closes the underlying file, if the sink opened one.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
