// Package testutil provides shared test helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a silent logger for tests that only care about the
// printed output, not the side-channel diagnostics.
// Use NewTestLoggerWithOutput to surface diagnostics through t.Log().
func NewTestLogger(t *testing.T) zerolog.Logger {
	return zerolog.Nop()
}

// NewTestLoggerWithOutput returns a debug-level logger that routes
// side-channel diagnostics to t.Log(), so they show up interleaved with the
// test's own output on failure.
func NewTestLoggerWithOutput(t *testing.T) zerolog.Logger {
	return zerolog.New(testLogWriter{t: t}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

type testLogWriter struct {
	t *testing.T
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
