package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
}

func (r *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

func (r *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	r.records = append(r.records, record)
	return nil
}

func (r *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(string) slog.Handler      { return r }

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError}
	logger := slog.New(NewMultiHandler(info, errOnly))

	logger.Info("hello")
	logger.Error("boom")

	require.Len(t, info.records, 2)
	require.Len(t, errOnly.records, 1)
	assert.Equal(t, "boom", errOnly.records[0].Message)
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(&recordingHandler{level: slog.LevelError})

	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}
