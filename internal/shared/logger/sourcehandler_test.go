package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		log        func(l *slog.Logger)
		wantSource bool
	}{
		{"info below warn threshold", slog.LevelWarn, func(l *slog.Logger) { l.Info("msg") }, false},
		{"warn at threshold", slog.LevelWarn, func(l *slog.Logger) { l.Warn("msg") }, true},
		{"error above threshold", slog.LevelWarn, func(l *slog.Logger) { l.Error("msg") }, true},
		{"debug with debug threshold", slog.LevelDebug, func(l *slog.Logger) { l.Debug("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(slog.New(NewSourceHandler(base, tt.minLevel)))

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	l := slog.New(NewSourceHandler(base, slog.LevelError)).With("tenant_id", "t-1").WithGroup("batch")

	l.Info("skipped", "id", "b-1")

	out := buf.String()
	assert.Contains(t, out, "tenant_id=t-1")
	assert.Contains(t, out, "batch.id=b-1")
	assert.NotContains(t, out, "source=")
}

func TestSourceHandler_EnabledDelegates(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewSourceHandler(base, slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
