package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestTraceHookAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "debug", Format: FormatJSON})

	ctx := ContextWithTraceID(context.Background(), "01TESTTRACE")
	logger.Info().Ctx(ctx).Msg("hello")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "01TESTTRACE", event[TraceIDField])
	assert.Equal(t, "hello", event["message"])
}

func TestTraceHookWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "info", Format: FormatJSON})
	logger.Info().Msg("plain")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.NotContains(t, event, TraceIDField)
}

func TestGetOrGenerateTraceID(t *testing.T) {
	generated := GetOrGenerateTraceID(context.Background())
	_, err := ulid.Parse(generated)
	require.NoError(t, err)

	ctx := ContextWithTraceID(context.Background(), generated)
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	t.Run("no logger", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.Equal(t, zerolog.Disabled, l.GetLevel())
	})

	t.Run("stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWriterLogger(&buf, Config{Level: "info", Format: FormatJSON})
		ctx := logger.WithContext(context.Background())

		l := FromContext(ctx)
		l.Info().Msg("from ctx")
		assert.Contains(t, buf.String(), "from ctx")
	})
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := ComponentLogger(NewWriterLogger(&buf, Config{Format: FormatJSON}), "api")
	logger.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"api"`)
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "contractlens.log")
		result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
		defer func() { _ = result.Close() }()

		assert.True(t, result.UsingFile)
		assert.Equal(t, path, result.FilePath)
		assert.False(t, result.FallbackUsed)
	})

	t.Run("fallback to stderr", func(t *testing.T) {
		dir := t.TempDir()
		result := NewLoggerWithPath(Config{Output: OutputFile, File: dir})
		defer func() { _ = result.Close() }()

		assert.False(t, result.UsingFile)
		assert.True(t, result.FallbackUsed)
		assert.NotEmpty(t, result.FallbackReason)
	})

	t.Run("close twice", func(t *testing.T) {
		result := NewLoggerWithPath(DefaultConfig())
		require.NoError(t, result.Close())
		require.NoError(t, result.Close())
	})
}
