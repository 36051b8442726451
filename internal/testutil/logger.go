package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text logger writing every level, debug included,
// to the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
