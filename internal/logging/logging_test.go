package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "focusflow.log")

	l, closer := NewFileLogger(path, slog.LevelInfo)
	l.Info("session recorded", slog.Int("minutes", 25))
	l.Debug("hidden")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "session recorded", entry["msg"])
	assert.EqualValues(t, 25, entry["minutes"])
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer

	l := NewConsoleLogger(&buf, slog.LevelInfo)
	l.Info("listening", "addr", ":5000")

	assert.Contains(t, buf.String(), "listening")
	assert.Contains(t, buf.String(), ":5000")
}

func TestContextLogger(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
