package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.NotNil(t, logger)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)

	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()

	entry := G(ctx)
	assert.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()

	custom := logrus.NewEntry(logrus.New())
	ctx = WithLogger(ctx, custom)

	entry := GetLogger(ctx)
	assert.Equal(t, custom.Logger, entry.Logger)
}

func TestSetLogLevel(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		require.NoError(t, SetLogLevel("debug"))
		assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

		require.NoError(t, SetLogLevel("warn"))
		assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, SetLogLevel("not-a-level"))
	})
}

func TestSetLogFormatJSON(t *testing.T) {
	defer SetLogFormat("fmt")

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogFormat("json")

	L.Warn("structured message")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "structured message", record["message"])
	assert.Equal(t, "warning", record["logLevel"])
}
