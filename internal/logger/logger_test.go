package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "trip-keeper-server")

	l.Info().Msg("started")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "trip-keeper-server", entry["role"])
	assert.Equal(t, "started", entry["message"])
	assert.Contains(t, entry, "time")
	// в поле func пишется имя функции, а не file:line
	assert.Contains(t, entry["func"], "TestNew_EntryFields")
}

func TestNew_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "r")

	l.Debug().Msg("debug")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.NotEmpty(t, buf.String())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestComponent_AddsFieldWithoutTouchingParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "client")

	child := parent.Component("keys")
	require.NotSame(t, parent, child)

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "keys", entry["component"])
	assert.Equal(t, "client", entry["role"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "component")
}

func TestFromContext(t *testing.T) {
	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trip_id", "t-1").Logger()

		FromContext(zl.WithContext(context.Background())).Info().Msg("x")

		assert.Equal(t, "t-1", decodeEntry(t, &buf)["trip_id"])
	})

	t.Run("no logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("request")

	assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
}

func TestClientLogPath(t *testing.T) {
	path := ClientLogPath()
	assert.Equal(t, ClientLogFile, filepath.Base(path))
}
