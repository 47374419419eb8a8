package file

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/sink"
)

func readLines(t *testing.T, data []byte) []Line {
	t.Helper()
	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var l Line
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &l))
		lines = append(lines, l)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestSink_WritesEveryRecordType(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	sink.Write(s, domain.LogRecord{Kind: domain.KindError, Severity: domain.SeverityError, Message: "m", Payload: errors.New("boom")})
	sink.WriteAction(s, domain.ActionRecord{Payload: "add"})
	sink.WriteState(s, domain.StateRecord{Current: domain.Snapshot{"a": 1}, Diff: domain.DiffRecord{"a": {Current: 1, Added: true}}})
	s.Warn("careful", "error", errors.New("slow"))

	lines := readLines(t, buf.Bytes())
	require.Len(t, lines, 4)

	assert.Equal(t, TypeRecord, lines[0].Type)
	assert.Equal(t, domain.KindError, lines[0].Record.Kind)
	assert.Equal(t, domain.SeverityError, lines[0].Record.Severity)
	assert.Equal(t, "boom", lines[0].Record.Payload)

	assert.Equal(t, TypeAction, lines[1].Type)
	assert.Equal(t, "add", lines[1].Action.Payload)

	assert.Equal(t, TypeState, lines[2].Type)
	assert.True(t, lines[2].State.Diff["a"].Added)

	assert.Equal(t, TypeMessage, lines[3].Type)
	assert.Equal(t, "warn", lines[3].Message.Level)
	assert.Equal(t, []any{"error", "slow"}, lines[3].Message.Args)
}

func TestSink_DropsUnencodableValues(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	s.Action(domain.ActionRecord{Payload: make(chan int)})
	s.Action(domain.ActionRecord{Payload: "ok"})

	lines := readLines(t, buf.Bytes())
	require.Len(t, lines, 1)
	assert.Equal(t, "ok", lines[0].Action.Payload)
}

func TestNewSink_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.jsonl")

	for i := 0; i < 2; i++ {
		s, err := NewSink(path)
		require.NoError(t, err)
		s.Info("run")
		require.NoError(t, s.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, readLines(t, data), 2)
}

func TestSink_LeavesCallerArgsIntact(t *testing.T) {
	var buf bytes.Buffer
	rec := sink.NewRecorder()
	m := sink.NewMulti(NewWriterSink(&buf), rec)

	boom := errors.New("boom")
	args := []any{"error", boom}
	m.Warn("careful", args...)

	assert.Same(t, boom, args[1], "caller slice must not be rewritten")

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Same(t, boom, entries[0].Args[1], "later sinks must receive the original error")

	lines := readLines(t, buf.Bytes())
	require.Len(t, lines, 1)
	assert.Equal(t, []any{"error", "boom"}, lines[0].Message.Args)
}
