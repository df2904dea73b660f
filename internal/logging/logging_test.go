package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLoggerWithPath_File tests logging to a file.
func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gridview.log")

	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Debug().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

// TestNewLoggerWithPath_Fallback tests the stderr fallback when no file is configured.
func TestNewLoggerWithPath_Fallback(t *testing.T) {
	result := NewLoggerWithPath(Config{Output: OutputFile})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

// TestNewLoggerWithPath_Level tests level parsing.
func TestNewLoggerWithPath_Level(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, NewLogger(Config{Level: "WARN", Output: OutputDiscard}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(Config{Level: "loud", Output: OutputDiscard}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(Config{Output: OutputDiscard}).GetLevel())
}

// TestFromContext tests reading the logger back from a context.
func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := ComponentLogger(zerolog.New(&buf), "source")
	ctx := logger.WithContext(context.Background())

	FromContext(ctx).Info().Msg("loaded")
	assert.Contains(t, buf.String(), `"component":"source"`)

	// A bare context must still yield a usable logger.
	FromContext(context.Background()).Info().Msg("dropped")
}

// TestTraceID tests trace id propagation and generation.
func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}
