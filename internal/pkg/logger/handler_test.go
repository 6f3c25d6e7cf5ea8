package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := WithTraceID(context.Background())
	l.InfoContext(ctx, "hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, TraceID(ctx), record["trace_id"])
	assert.NotEmpty(t, record["trace_id"])
}

func TestRemoteFilterHandler_DropsUntraced(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.Info("no trace")
	assert.NotEmpty(t, local.String())
	assert.Empty(t, remote.String())

	l.InfoContext(WithTraceID(context.Background()), "traced")
	assert.Contains(t, remote.String(), "traced")
}

func TestRemoteFilterHandler_ForwardsWarnings(t *testing.T) {
	var remote bytes.Buffer
	l := log.New(&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)})

	l.Warn("ledger counter mismatch")
	assert.Contains(t, remote.String(), "ledger counter mismatch")
}

func TestTeeHandler_Enabled(t *testing.T) {
	var debug, info bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&info, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&debug, &log.HandlerOptions{Level: log.LevelDebug}),
	}}
	l := log.New(tee)

	l.Debug("detail")
	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), "detail")
}
