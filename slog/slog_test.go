package slog

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isobit/cflag"
)

func TestOptionsFlags(t *testing.T) {
	opts := &Options{}
	fs := cflag.New("test", cflag.ContinueOnError, cflag.WithEnv(cflag.NewMapEnv(nil)))
	err := fs.Parse(opts.Flags(), []string{"--log-level", "warn", "--log-json"})
	require.NoError(t, err)

	assert.Equal(t, slog.LevelWarn, opts.LogLevel)
	assert.True(t, opts.LogJSON)
}

func TestOptionsEnv(t *testing.T) {
	opts := &Options{}
	env := cflag.NewMapEnv(map[string]string{
		"LOG_LEVEL": "debug",
		"LOG_JSON":  "true",
	})
	fs := cflag.New("test", cflag.ContinueOnError, cflag.WithEnv(env))
	require.NoError(t, fs.Parse(opts.Flags(), nil))

	assert.Equal(t, slog.LevelDebug, opts.LogLevel)
	assert.True(t, opts.LogJSON)
}

func TestNewLogger(t *testing.T) {
	b := &strings.Builder{}
	opts := &Options{LogLevel: slog.LevelWarn, LogJSON: true}
	logger := opts.NewLogger(b, nil)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Warn("hello")
	assert.Contains(t, b.String(), `"msg":"hello"`)
}
