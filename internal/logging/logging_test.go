package logging

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *memLogger) WriteLineString(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, s)
}

func (m *memLogger) WriteLineBytes(b []byte) { m.WriteLineString(string(b)) }

func TestNewWritesOneLinePerRecord(t *testing.T) {
	sink := &memLogger{}
	log := New(sink, slog.LevelInfo)

	log.Info("face created", "component", "face", "round", true)
	log.Debug("hidden at info level")

	require.Len(t, sink.lines, 1)
	assert.Contains(t, sink.lines[0], "msg=\"face created\"")
	assert.Contains(t, sink.lines[0], "component=face")
	assert.Contains(t, sink.lines[0], "round=true")
}

func TestNewDebugLevel(t *testing.T) {
	sink := &memLogger{}
	log := New(sink, slog.LevelDebug)
	log.Debug("tap", "kind", "touch")
	require.Len(t, sink.lines, 1)
	assert.Contains(t, sink.lines[0], "level=DEBUG")
}

func TestWriterSplitsLines(t *testing.T) {
	sink := &memLogger{}
	n, err := Writer(sink).Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"a", "b"}, sink.lines)
}

func TestDiscardAndNilSink(t *testing.T) {
	Discard().Error("dropped")
	New(nil, slog.LevelDebug).Error("dropped")
}
