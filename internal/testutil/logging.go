package testutil

import (
	"bytes"
	"log/slog"
	"testing"
)

// CaptureLogger returns a logger writing text records at level into a buffer.
func CaptureLogger(t *testing.T, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}
