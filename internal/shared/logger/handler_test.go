package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTextHandler(buf *bytes.Buffer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
}

func TestSourceHandler_SourceByLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{"info not configured", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn configured", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error configured", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info in debug mode", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewSourceHandler(newTextHandler(&buf, slog.LevelDebug), tt.levels...))
			log.Log(context.Background(), tt.level, "subscription renewed")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestSourceHandler_RedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewSourceHandler(newTextHandler(&buf, slog.LevelInfo)))

	log.With("api_key", "hrms-secret").Info("hrms sync", "subscription_id", 42, "Authorization", "Bearer abc")

	out := buf.String()
	assert.NotContains(t, out, "hrms-secret")
	assert.NotContains(t, out, "Bearer abc")
	assert.Contains(t, out, "subscription_id=42")
	assert.Contains(t, out, redactedValue)
}

func TestSourceHandler_RespectsBaseLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewSourceHandler(newTextHandler(&buf, slog.LevelInfo), slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestSourceHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewSourceHandler(newTextHandler(&buf, slog.LevelInfo))).WithGroup("sweep")
	log.Info("expired subscriptions", "count", 3)

	assert.Contains(t, buf.String(), "sweep.count=3")
}
