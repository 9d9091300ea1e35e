package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return New(Options{
		ServiceName: "vitrine-test",
		Level:       zerolog.DebugLevel,
		Output:      buf,
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestInfoIncludesServiceName(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Info(context.Background(), "catalog started")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "vitrine-test", entry["service"])
	assert.Equal(t, "catalog started", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithField(ctx, "quote_id", "q-42")
	log.Info(ctx, "quote created")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "q-42", entry["quote_id"])
}

func TestWithFieldsDoesNotMutateParentContext(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	parent := log.WithField(context.Background(), "request_id", "req-1")
	_ = log.WithFields(parent, map[string]any{"client_id": "c-1"})

	log.Info(parent, "listing products")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.NotContains(t, entry, "client_id")
}

func TestErrorIncludesStackAndError(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Error(context.Background(), "price lookup failed", errors.New("tier not found"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "tier not found", entry["error"])
	assert.NotEmpty(t, entry["stack"])
}

func TestWarnStackOptional(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{
		ServiceName: "vitrine-test",
		Level:       zerolog.DebugLevel,
		WarnStack:   true,
		Output:      &buf,
	})

	log.Warn(context.Background(), "settings cache miss")

	entry := decodeLine(t, &buf)
	assert.NotEmpty(t, entry["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
