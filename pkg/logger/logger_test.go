package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew_WritesJSONWithExtractedValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := New(Config{Level: "debug", Output: &buf}, ValueExtractor("surface_id"))
	require.NotNil(t, flush)

	ctx := WithValue(context.Background(), "surface_id", "abc-123")
	log.DebugContext(ctx, "opened", slog.String("state", "idle"))

	rec := decodeLine(t, &buf)
	assert.Equal(t, "opened", rec["msg"])
	assert.Equal(t, "abc-123", rec["surface_id"])
	assert.Equal(t, "idle", rec["state"])
	assert.True(t, flush(0))
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := New(Config{Level: "warn", Output: &buf})

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Equal(t, "shown", decodeLine(t, &buf)["msg"])
}

func TestContextHandler_SkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewContextHandler(slog.NewJSONHandler(&buf, nil), nil, ValueExtractor("request_id"))
	slog.New(h).With("component", "test").InfoContext(context.Background(), "no request")

	rec := decodeLine(t, &buf)
	assert.NotContains(t, rec, "request_id")
	assert.Equal(t, "test", rec["component"])
}

func TestMultiHandler_FansOut(t *testing.T) {
	t.Parallel()

	var all, errorsOnly bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&all, nil),
		slog.NewJSONHandler(&errorsOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Info("info")
	assert.NotZero(t, all.Len())
	assert.Zero(t, errorsOnly.Len())

	log.Error("boom")
	assert.Contains(t, errorsOnly.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestWithScope_ValuesReachOuterRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := New(Config{Output: &buf}, ValueExtractor("surface_id"))

	outer := WithScope(context.Background())
	assert.Equal(t, outer, WithScope(outer), "scope is installed once")

	_ = WithValue(outer, "surface_id", "abc-123")

	log.InfoContext(outer, "request")
	assert.Equal(t, "abc-123", decodeLine(t, &buf)["surface_id"])

	buf.Reset()
	log.InfoContext(WithValue(outer, "surface_id", "override"), "inner")
	assert.Equal(t, "override", decodeLine(t, &buf)["surface_id"])
}
