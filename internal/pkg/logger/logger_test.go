package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Panics(t, func() { parseLevel("verbose") })
}

func TestNew_UnsupportedEncodingPanics(t *testing.T) {
	assert.Panics(t, func() {
		New("celestai_web", &Config{Encoding: "xml", Level: "info"})
	})
}

func TestConsoleHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := slog.New(h).With("app", "test")

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))

	log.Info("skipped")
	log.Warn("kept", "session_id", "s1")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "app=test")
	assert.Contains(t, buf.String(), "session_id=s1")
}
