package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/treecheck/internal/errors"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func jsonLogger(buf *bytes.Buffer, level Level) *Logger {
	return New(Config{Level: level, Format: FormatJSON, Output: buf, ServiceName: "treecheck", ServiceVersion: "test"})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, "json", FormatJSON.String())
}

func TestConfigs(t *testing.T) {
	assert.Equal(t, LevelInfo, DefaultConfig().Level)
	assert.Equal(t, "treecheck", DefaultConfig().ServiceName)
	assert.Equal(t, LevelDebug, DevelopmentConfig().Level)
	assert.True(t, DevelopmentConfig().AddSource)
	assert.Equal(t, FormatJSON, ProductionConfig().Format)
}

func TestLogger_ServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, LevelInfo).Info("validated", "nodes", 3)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "validated", entry["msg"])
	assert.Equal(t, "treecheck", entry["service"])
	assert.Equal(t, "test", entry["version"])
	assert.EqualValues(t, 3, entry["nodes"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelWarn)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestLogger_WithErrorCoded(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("check: %w", errors.NewGateLowScoreError(40, 70))

	jsonLogger(&buf, LevelInfo).WithError(err).Warn("gate rejected tree")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "GATE-002", entry["error_code"])
	assert.Contains(t, entry["error"], "score 40")
	assert.NotEmpty(t, entry["suggestions"])
}

func TestLogger_WithErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelInfo)

	assert.Same(t, logger, logger.WithError(nil))

	logger.WithError(fmt.Errorf("boom")).Error("failed")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "error_code")
}

func TestLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelInfo)

	logger.LogError(context.Background(), nil)
	assert.Zero(t, buf.Len())

	cause := fmt.Errorf("unexpected EOF")
	logger.LogError(context.Background(), errors.NewTreeUnmarshalError("t.json", "json", cause))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, "TREE-002", entry["error_code"])
	assert.Equal(t, "unexpected EOF", entry["cause"])
	assert.NotEmpty(t, entry["docs_url"])
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: LevelInfo, Format: FormatText, Output: &buf}).Info("hello", "k", "v")

	line := buf.String()
	assert.True(t, strings.Contains(line, "msg=hello"), line)
	assert.Contains(t, line, "k=v")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("discarded") })
}

func TestDefaultLogger(t *testing.T) {
	t.Cleanup(func() { SetDefaultLogger(nil) })

	SetDefaultLogger(nil)
	first := DefaultLogger()
	require.NotNil(t, first)
	assert.Same(t, first, DefaultLogger())

	custom := Nop()
	SetDefaultLogger(custom)
	assert.Same(t, custom, DefaultLogger())
}
