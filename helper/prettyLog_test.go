package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestHandler(buf *bytes.Buffer, level slog.Level) *PrettyHandler {
	return NewPrettyHandler(buf, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	})
}

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer

		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		assert.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Create PrettyHandler with source locations enabled", func(t *testing.T) {
		var buf bytes.Buffer
		opts := PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{AddSource: true},
		}

		assert.NotNil(t, NewPrettyHandler(&buf, opts), "Expected NewPrettyHandler to return a non-nil handler")
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("Formats every level with its label", func(t *testing.T) {
		levels := map[slog.Level]string{
			slog.LevelDebug: "DEBUG:",
			slog.LevelInfo:  "INFO:",
			slog.LevelWarn:  "WARN:",
			slog.LevelError: "ERROR:",
		}

		for level, label := range levels {
			var buf bytes.Buffer
			handler := newTestHandler(&buf, slog.LevelDebug)

			record := slog.NewRecord(time.Now(), level, "expanding frontier", 0)
			assert.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")

			assert.Contains(t, buf.String(), label, "Expected output to carry the level label")
			assert.Contains(t, buf.String(), "expanding frontier", "Expected output to carry the message")
		}
	})

	t.Run("Renders attributes as JSON", func(t *testing.T) {
		var buf bytes.Buffer
		handler := newTestHandler(&buf, slog.LevelInfo)

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "nodes merged", 0)
		record.AddAttrs(
			slog.String("seed", "quantum computing"),
			slog.Int("nodes", 7),
			slog.Bool("url_seed", false),
		)

		assert.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")
		output := buf.String()
		assert.Contains(t, output, "seed", "Expected output to contain attribute keys")
		assert.Contains(t, output, "quantum computing", "Expected output to contain string values")
		assert.Contains(t, output, "7", "Expected output to contain numeric values")
		assert.Contains(t, output, "url_seed", "Expected output to contain boolean attributes")
	})

	t.Run("Renders an empty attribute set as an empty object", func(t *testing.T) {
		var buf bytes.Buffer
		handler := newTestHandler(&buf, slog.LevelInfo)

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "build finished", 0)

		assert.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")
		assert.Contains(t, buf.String(), "{}", "Expected empty JSON object when no attributes are set")
	})

	t.Run("Renders nested attribute values", func(t *testing.T) {
		var buf bytes.Buffer
		handler := newTestHandler(&buf, slog.LevelInfo)

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "graph persisted", 0)
		record.AddAttrs(slog.Any("levels", map[string]interface{}{"0": 1, "1": 3}))

		assert.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")
		assert.Contains(t, buf.String(), "levels", "Expected output to contain the nested attribute key")
	})

	t.Run("Formats the timestamp with millisecond precision", func(t *testing.T) {
		var buf bytes.Buffer
		handler := newTestHandler(&buf, slog.LevelInfo)

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "tick", 0)

		assert.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String(),
			"Expected output to contain a bracketed [15:04:05.000] timestamp")
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Suppresses records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn)

		logger.Info("frontier exhausted")
		logger.Warn("search rate limited")

		assert.NotContains(t, buf.String(), "frontier exhausted", "Expected info record to be dropped")
		assert.Contains(t, buf.String(), "search rate limited", "Expected warn record to be written")
	})
}
