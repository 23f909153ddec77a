package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufLogger()

	l.Debug(ctx, "d")
	require.Equal(t, "DEBUG", lastLine(t, buf)["level"])

	l.Info(ctx, "i")
	require.Equal(t, "INFO", lastLine(t, buf)["level"])

	l.Warn(ctx, "w")
	require.Equal(t, "WARN", lastLine(t, buf)["level"])

	l.Error(ctx, "e")
	require.Equal(t, "ERROR", lastLine(t, buf)["level"])
}

func TestSlogLogger_With(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufLogger()

	child := l.With("module", "scanner")
	child.Info(ctx, "tick", "n", 1)

	m := lastLine(t, buf)
	require.Equal(t, "scanner", m["module"])
	require.Equal(t, float64(1), m["n"])
	require.Equal(t, "tick", m["msg"])
}
