package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug level", level: "debug", expected: zerolog.DebugLevel},
		{name: "info level", level: "info", expected: zerolog.InfoLevel},
		{name: "warn level", level: "warn", expected: zerolog.WarnLevel},
		{name: "error level", level: "error", expected: zerolog.ErrorLevel},
		{name: "unknown level defaults to warn", level: "trace", expected: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(Config{Level: tt.level})
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "debug", Output: &buf}, "frameparser")
	logger.Warn().Msg("no dynamic symbol")

	out := buf.String()
	assert.Contains(t, out, "frameparser")
	assert.Contains(t, out, "no dynamic symbol")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.Pretty)
	assert.NotNil(t, cfg.Output)
}
